package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stackctl/internal/cli"
	"stackctl/internal/formatting"
	"stackctl/internal/reconciler"
)

var (
	cleanupPattern    string
	cleanupMinutesOld int
	cleanupDryRun     bool
	cleanupLimit      int
)

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete stale stacks in bulk",
		Long: `Cleanup scans all stacks in a terminal state, selects those whose name
matches the pattern and that are older than the age threshold, and deletes
them oldest first. Individual delete failures are logged and do not abort
the batch. With --dry-run the selected stacks are only listed.`,
		RunE: runCleanup,
	}

	cmd.Flags().StringVar(&cleanupPattern, "pattern", "", "Regular expression matched against stack names")
	cmd.Flags().IntVar(&cleanupMinutesOld, "minutes-old", 0, "Only delete stacks created at least this many minutes ago")
	cmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "List the stacks that would be deleted without deleting them")
	cmd.Flags().IntVar(&cleanupLimit, "limit", 0, "Delete at most this many stacks, oldest first (0 = no limit)")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func runCleanup(cmd *cobra.Command, args []string) error {
	mgr, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}

	s := cli.NewSpinner("scanning stacks")
	s.Start()
	candidates, err := mgr.Cleanup(cmd.Context(), reconciler.CleanupOptions{
		Pattern:   cleanupPattern,
		OlderThan: time.Duration(cleanupMinutesOld) * time.Minute,
		DryRun:    cleanupDryRun,
		Limit:     cleanupLimit,
	})
	s.Stop()
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stacks matched")
		return nil
	}

	formatting.RenderCandidates(cmd.OutOrStdout(), candidates)
	if cleanupDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d stack(s) would be deleted\n", len(candidates))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Issued deletes for %d stack(s)\n", len(candidates))
	}
	return nil
}
