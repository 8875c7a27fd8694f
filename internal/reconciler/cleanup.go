package reconciler

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"stackctl/internal/events"
	"stackctl/pkg/logging"
)

// CleanupOptions configures one cleanup scan.
type CleanupOptions struct {
	// Pattern is a regular expression matched against stack names.
	Pattern string

	// OlderThan excludes stacks created more recently than now-OlderThan.
	OlderThan time.Duration

	// DryRun reports candidates without deleting anything.
	DryRun bool

	// Limit caps the batch to the oldest Limit candidates. Zero means
	// no cap.
	Limit int
}

// CleanupCandidate is one stack the scan selected, oldest first.
type CleanupCandidate struct {
	Name         string
	CreationTime time.Time
}

// Cleanup scans all stacks in a stable (terminal) status, selects those
// matching the pattern and older than the threshold, and deletes them
// oldest first. Deletes are issued in parallel; an individual delete
// failure is logged and never aborts the rest of the batch. The selected
// candidates are returned so the caller can report them.
func (m *Manager) Cleanup(ctx context.Context, opts CleanupOptions) ([]CleanupCandidate, error) {
	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup pattern %q: %w", opts.Pattern, err)
	}
	cutoff := time.Now().Add(-opts.OlderThan)

	var candidates []CleanupCandidate
	token := ""
	for {
		page, err := m.client.StacksPage(ctx, token, events.StableStatuses)
		if err != nil {
			return nil, fmt.Errorf("listing stacks: %w", err)
		}
		for _, s := range page.Stacks {
			if re.MatchString(s.Name) && s.CreationTime.Before(cutoff) {
				candidates = append(candidates, CleanupCandidate{
					Name:         s.Name,
					CreationTime: s.CreationTime,
				})
			}
		}
		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreationTime.Before(candidates[j].CreationTime)
	})
	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}

	if opts.DryRun {
		for _, c := range candidates {
			logging.Info("Cleanup", "Would delete stack %s (created %s)",
				c.Name, c.CreationTime.Format(time.RFC3339))
		}
		return candidates, nil
	}

	// Deletes are issued, not awaited to completion: each one runs
	// asynchronously on the control-plane side and the scan returns once
	// every call has been accepted or logged as failed.
	var g errgroup.Group
	for _, c := range candidates {
		c := c
		g.Go(func() error {
			logging.Info("Cleanup", "Deleting stack %s (created %s)",
				c.Name, c.CreationTime.Format(time.RFC3339))
			if err := m.Delete(ctx, c.Name, DeleteOptions{Async: true}); err != nil {
				logging.Error("Cleanup", err, "Failed to delete stack %s", c.Name)
			}
			return nil
		})
	}
	_ = g.Wait()

	return candidates, nil
}
