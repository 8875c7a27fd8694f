package reconciler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"stackctl/internal/controlplane"
	"stackctl/internal/events"
	"stackctl/pkg/logging"
)

// poller watches one operation's event log until it reaches a terminal
// state. It owns the operation's event ledger and completes the done
// channel exactly once.
type poller struct {
	ledger   *events.Ledger
	op       Operation
	interval time.Duration
	sink     EventSink

	done     chan error
	once     sync.Once
	inflight atomic.Bool
}

func newPoller(client controlplane.Client, op Operation, interval time.Duration, sink EventSink) *poller {
	return &poller{
		ledger:   events.NewLedger(client, op.Target, op.StartedAt),
		op:       op,
		interval: interval,
		sink:     sink,
		done:     make(chan error, 1),
	}
}

// resolve completes the operation. Only the first call wins.
func (p *poller) resolve(err error) {
	p.once.Do(func() {
		p.done <- err
	})
}

// Wait polls until the operation reaches a terminal state or ctx is
// cancelled. The first check runs immediately; later checks run at the
// configured interval. A tick still in flight when the timer fires again
// is skipped rather than overlapped, so a slow event fetch never piles up
// concurrent page requests against the control plane.
func (p *poller) Wait(ctx context.Context) error {
	logging.Debug("Poller", "Watching %s of stack %s (interval %s)", p.op.Action, p.op.Target, p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.startTick(ctx)
	for {
		select {
		case err := <-p.done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Prefer a terminal result that raced with the timer so a
			// finished operation never starts another tick.
			select {
			case err := <-p.done:
				return err
			default:
			}
			p.startTick(ctx)
		}
	}
}

func (p *poller) startTick(ctx context.Context) {
	if !p.inflight.CompareAndSwap(false, true) {
		logging.Debug("Poller", "Tick for stack %s still in flight, skipping", p.op.Target)
		return
	}
	go func() {
		defer p.inflight.Store(false)
		p.tick(ctx)
	}()
}

func (p *poller) tick(ctx context.Context) {
	evs, err := p.ledger.Pull(ctx)
	if err != nil {
		if controlplane.IsNotFound(err) && p.op.Action == ActionDelete {
			// The stack is gone, which is exactly what a delete wants.
			p.resolve(nil)
			return
		}
		p.resolve(err)
		return
	}

	for _, ev := range evs {
		if p.sink != nil {
			p.sink(p.op, ev)
		}
		if !events.IsAuthoritative(ev, p.op.Target) {
			continue
		}

		switch events.Classify(ev.Status) {
		case events.OutcomeSucceeded:
			if !ev.Timestamp.Before(p.op.StartedAt) {
				p.resolve(nil)
			}
		case events.OutcomeFailed:
			if ev.Timestamp.Before(p.op.StartedAt) {
				// A terminal failure left behind by an earlier operation
				// on this stack. It is not this operation's failure, so
				// the current operation still counts as successful.
				p.resolve(nil)
			} else {
				p.resolve(&controlplane.OperationFailedError{
					Target: p.op.Target,
					Status: ev.Status,
					Reason: ev.Reason,
				})
			}
		}
	}
}
