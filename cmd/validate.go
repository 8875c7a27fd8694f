package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/template"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate TEMPLATE",
		Short: "Validate a template with the control plane",
		Long: `Validate resolves the template and asks CloudFormation to validate it.
TEMPLATE is a local file path or an https:// or s3:// URL.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	mgr, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}

	if err := mgr.Validate(cmd.Context(), template.SourceFromArg(args[0])); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Template is valid")
	return nil
}
