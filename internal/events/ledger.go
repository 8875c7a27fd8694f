package events

import (
	"context"
	"sort"
	"time"

	"stackctl/internal/controlplane"
	"stackctl/pkg/logging"
)

// Ledger tracks which stack events have already been surfaced for one
// operation. It is owned by exactly one poller and discarded with it;
// event IDs are only unique within one stack lifetime, so ledgers must
// never be shared across operations.
type Ledger struct {
	client    controlplane.Client
	target    string
	startedAt time.Time

	// seen holds IDs already returned by a previous Pull.
	seen map[string]struct{}
}

// NewLedger creates a Ledger for one operation against target. startedAt
// bounds how far back Pull pages through the event log.
func NewLedger(client controlplane.Client, target string, startedAt time.Time) *Ledger {
	return &Ledger{
		client:    client,
		target:    target,
		startedAt: startedAt,
		seen:      make(map[string]struct{}),
	}
}

// Pull fetches events not yet surfaced, sorted ascending by timestamp so
// the caller processes them in causal order.
//
// The remote feed is paginated newest-first. Paging stops as soon as a
// fetched page contains an event older than the operation start: every
// later page belongs to a prior operation, which keeps poll cost flat as
// the stack's history grows. Events from the fetched pages that predate
// the start are still surfaced once; the poller decides what they mean.
//
// A throttled remote call yields an empty batch and no error, so the
// caller just retries on its next tick. A not-found error is returned
// as-is: for a delete it is the terminal success signal.
func (l *Ledger) Pull(ctx context.Context) ([]controlplane.Event, error) {
	var collected []controlplane.Event

	token := ""
	for {
		page, err := l.client.EventsPage(ctx, l.target, token)
		if err != nil {
			if controlplane.IsThrottled(err) {
				logging.Debug("Ledger", "Event fetch for %s throttled, skipping tick", l.target)
				return nil, nil
			}
			return nil, err
		}

		reachedStart := false
		for _, ev := range page.Events {
			collected = append(collected, ev)
			if ev.Timestamp.Before(l.startedAt) {
				reachedStart = true
			}
		}

		if reachedStart || page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	fresh := collected[:0]
	for _, ev := range collected {
		if _, ok := l.seen[ev.ID]; ok {
			continue
		}
		l.seen[ev.ID] = struct{}{}
		fresh = append(fresh, ev)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Timestamp.Before(fresh[j].Timestamp)
	})
	return fresh, nil
}
