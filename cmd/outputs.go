package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"stackctl/internal/cli"
	"stackctl/internal/formatting"
)

var outputsFormat string

func newOutputsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outputs STACK [KEY]",
		Short: "Show a stack's outputs",
		Long: `Outputs prints the named stack's output values. With a KEY argument only
that single value is printed, which is convenient for shell substitution.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runOutputs,
	}

	cmd.Flags().StringVarP(&outputsFormat, "output", "o", string(cli.OutputFormatTable), "Output format: table, json, or yaml")

	return cmd
}

func runOutputs(cmd *cobra.Command, args []string) error {
	mgr, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		value, err := mgr.Output(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	if err := cli.ValidateOutputFormat(outputsFormat); err != nil {
		return err
	}

	outputs, err := mgr.Outputs(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cli.OutputFormat(outputsFormat) != cli.OutputFormatTable {
		return cli.PrintStructured(cmd.OutOrStdout(), cli.OutputFormat(outputsFormat), outputs)
	}

	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	formatting.RenderOutputs(cmd.OutOrStdout(), outputs, keys)
	return nil
}
