package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/cli"
	"stackctl/internal/controlplane"
	"stackctl/internal/formatting"
	"stackctl/internal/reconciler"
)

var (
	deleteAsync bool
	deleteQuiet bool
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete STACK",
		Short: "Delete a stack",
		Long: `Delete removes the named stack. A stack that does not exist counts as
already deleted. Unless --async is given, the command follows the stack
event log until deletion completes.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolVar(&deleteAsync, "async", false, "Return once the delete is accepted, without waiting")
	cmd.Flags().BoolVarP(&deleteQuiet, "quiet", "q", false, "Suppress per-event output, show a spinner instead")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	var sink reconciler.EventSink
	if !deleteQuiet && !deleteAsync {
		out := cmd.OutOrStdout()
		sink = func(op reconciler.Operation, ev controlplane.Event) {
			fmt.Fprintln(out, formatting.EventLine(op, ev))
		}
	}

	mgr, _, err := setup(cmd.Context(), sink)
	if err != nil {
		return err
	}

	if deleteQuiet && !deleteAsync {
		s := cli.NewSpinner(fmt.Sprintf("deleting %s", name))
		s.Start()
		defer s.Stop()
	}

	if err := mgr.Delete(cmd.Context(), name, reconciler.DeleteOptions{Async: deleteAsync}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stack %s deleted\n", name)
	return nil
}
