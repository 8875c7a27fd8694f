package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/controlplane"
)

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists STACK",
		Short: "Check whether a stack exists",
		Long: `Exists prints "true" or "false" for the named stack. A missing stack also
sets a distinct exit code so scripts can branch without parsing output.`,
		Args: cobra.ExactArgs(1),
		RunE: runExists,
	}
}

func runExists(cmd *cobra.Command, args []string) error {
	mgr, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}

	exists, err := mgr.Exists(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), exists)
	if !exists {
		// Surfaced as ExitCodeNotFound; cobra has already been told not
		// to print usage for handled errors.
		cmd.SilenceErrors = true
		return &controlplane.NotFoundError{Name: args[0]}
	}
	return nil
}
