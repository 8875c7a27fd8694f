package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/cli"
	"stackctl/internal/controlplane"
	"stackctl/internal/formatting"
	"stackctl/internal/reconciler"
	"stackctl/internal/template"
)

var (
	deployParameters    []string
	deployParameterFile string
	deployTags          []string
	deployAsync         bool
	deployQuiet         bool
)

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy STACK TEMPLATE",
		Short: "Create or update a stack from a template",
		Long: `Deploy drives the named stack to the state described by the template,
creating it if it does not exist and updating it otherwise. Unless --async
is given, the command follows the stack event log and exits when the
operation reaches a terminal state. TEMPLATE is a local file path or an
https:// or s3:// URL.`,
		Args: cobra.ExactArgs(2),
		RunE: runDeploy,
	}

	cmd.Flags().StringArrayVarP(&deployParameters, "parameter", "p", nil, "Template parameter as Key=Value (repeatable)")
	cmd.Flags().StringVar(&deployParameterFile, "parameter-file", "", "JSON or YAML file with template parameters")
	cmd.Flags().StringArrayVarP(&deployTags, "tag", "t", nil, "Stack tag as Key=Value (repeatable)")
	cmd.Flags().BoolVar(&deployAsync, "async", false, "Return once the operation is accepted, without waiting")
	cmd.Flags().BoolVarP(&deployQuiet, "quiet", "q", false, "Suppress per-event output, show a spinner instead")

	return cmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	name, templateArg := args[0], args[1]

	flagParams, err := cli.ParseParameterArgs(deployParameters)
	if err != nil {
		return err
	}
	params := flagParams
	if deployParameterFile != "" {
		fileParams, err := cli.LoadParameterFile(deployParameterFile)
		if err != nil {
			return err
		}
		params = cli.MergeParameters(fileParams, flagParams)
	}

	tags, err := cli.ParseParameterArgs(deployTags)
	if err != nil {
		return err
	}

	var sink reconciler.EventSink
	if !deployQuiet && !deployAsync {
		out := cmd.OutOrStdout()
		sink = func(op reconciler.Operation, ev controlplane.Event) {
			fmt.Fprintln(out, formatting.EventLine(op, ev))
		}
	}

	mgr, _, err := setup(cmd.Context(), sink)
	if err != nil {
		return err
	}

	if deployQuiet && !deployAsync {
		s := cli.NewSpinner(fmt.Sprintf("deploying %s", name))
		s.Start()
		defer s.Stop()
	}

	err = mgr.Deploy(cmd.Context(), name, template.SourceFromArg(templateArg), reconciler.DeployOptions{
		Parameters: params,
		Tags:       tags,
		Async:      deployAsync,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stack %s deployed\n", name)
	return nil
}
