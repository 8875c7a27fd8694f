package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"stackctl/internal/controlplane"
)

// Exit codes for CLI commands. These follow common conventions and give
// scripts something more useful than a blanket 1.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeOperationFailed indicates a stack operation reached a terminal failure state.
	ExitCodeOperationFailed = 2
	// ExitCodeNotFound indicates a referenced stack does not exist.
	ExitCodeNotFound = 3
)

var (
	rootConfigPath string
	rootRegion     string
	rootLogLevel   string
)

// rootCmd represents the base command for the stackctl application.
var rootCmd = &cobra.Command{
	Use:   "stackctl",
	Short: "Deploy and manage CloudFormation stacks",
	Long: `stackctl drives CloudFormation stacks to a desired state from a
declarative template, reporting progress from the stack event log until
the operation completes, and cleans up stale stacks in bulk.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "stackctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var opFailed *controlplane.OperationFailedError
	if errors.As(err, &opFailed) {
		return ExitCodeOperationFailed
	}

	var notFound *controlplane.NotFoundError
	if errors.As(err, &notFound) {
		return ExitCodeNotFound
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config-path", "", "Directory holding config.yaml (default ~/.config/stackctl)")
	rootCmd.PersistentFlags().StringVar(&rootRegion, "region", "", "AWS region (overrides config file and SDK defaults)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newOutputsCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newExistsCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())
}
