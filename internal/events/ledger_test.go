package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"stackctl/internal/controlplane"
)

// stubEventFeed implements just the event-page fetch of the control-plane
// client; the ledger touches nothing else.
type stubEventFeed struct {
	controlplane.Client

	pages map[string]controlplane.EventPage
	err   error
	calls int
}

func (s *stubEventFeed) EventsPage(_ context.Context, _, token string) (controlplane.EventPage, error) {
	s.calls++
	if s.err != nil {
		return controlplane.EventPage{}, s.err
	}
	return s.pages[token], nil
}

func event(id string, ts time.Time) controlplane.Event {
	return controlplane.Event{
		ID:           id,
		ResourceType: "AWS::S3::Bucket",
		LogicalID:    "Bucket",
		Status:       "CREATE_IN_PROGRESS",
		Timestamp:    ts,
	}
}

func TestLedgerPullDeduplicates(t *testing.T) {
	start := time.Now()
	feed := &stubEventFeed{pages: map[string]controlplane.EventPage{
		"": {Events: []controlplane.Event{
			event("e2", start.Add(2*time.Second)),
			event("e1", start.Add(1*time.Second)),
		}},
	}}

	l := NewLedger(feed, "demo", start)

	first, err := l.Pull(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 events, got %d", len(first))
	}
	if first[0].ID != "e1" || first[1].ID != "e2" {
		t.Errorf("expected ascending timestamp order, got %s then %s", first[0].ID, first[1].ID)
	}

	// The same page again plus one new event: only the new one surfaces.
	feed.pages[""] = controlplane.EventPage{Events: []controlplane.Event{
		event("e3", start.Add(3*time.Second)),
		event("e2", start.Add(2*time.Second)),
		event("e1", start.Add(1*time.Second)),
	}}

	second, err := l.Pull(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 || second[0].ID != "e3" {
		t.Fatalf("expected only e3, got %+v", second)
	}

	third, err := l.Pull(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(third) != 0 {
		t.Fatalf("expected no events on repeat pull, got %+v", third)
	}
}

func TestLedgerStopsPagingAtOperationStart(t *testing.T) {
	start := time.Now()
	feed := &stubEventFeed{pages: map[string]controlplane.EventPage{
		"": {
			Events:    []controlplane.Event{event("new", start.Add(time.Second))},
			NextToken: "p2",
		},
		"p2": {
			// One event from before the operation started: paging must
			// stop here even though a third page exists.
			Events:    []controlplane.Event{event("stale", start.Add(-time.Hour))},
			NextToken: "p3",
		},
		"p3": {
			Events: []controlplane.Event{event("ancient", start.Add(-2*time.Hour))},
		},
	}}

	l := NewLedger(feed, "demo", start)
	evs, err := l.Pull(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if feed.calls != 2 {
		t.Errorf("expected 2 page fetches, got %d", feed.calls)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events (stale one still surfaces once), got %d", len(evs))
	}
	if evs[0].ID != "stale" || evs[1].ID != "new" {
		t.Errorf("expected [stale new], got [%s %s]", evs[0].ID, evs[1].ID)
	}
}

func TestLedgerThrottledYieldsEmptyBatch(t *testing.T) {
	feed := &stubEventFeed{err: &controlplane.ThrottledError{Op: "describe stack events"}}

	l := NewLedger(feed, "demo", time.Now())
	evs, err := l.Pull(context.Background())
	if err != nil {
		t.Fatalf("throttling must not propagate, got: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("expected empty batch, got %+v", evs)
	}
}

func TestLedgerNotFoundPropagates(t *testing.T) {
	feed := &stubEventFeed{err: &controlplane.NotFoundError{Name: "demo"}}

	l := NewLedger(feed, "demo", time.Now())
	_, err := l.Pull(context.Background())
	if !controlplane.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got: %v", err)
	}
}

func TestLedgerTransportErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	feed := &stubEventFeed{err: boom}

	l := NewLedger(feed, "demo", time.Now())
	_, err := l.Pull(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error to propagate, got: %v", err)
	}
}
