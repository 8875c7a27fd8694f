package reconciler

import (
	"context"
	"sync"
	"time"

	"stackctl/internal/controlplane"
)

// =============================================================================
// fakeControlPlane - shared control-plane fake for all reconciler tests
// =============================================================================

// fakeControlPlane implements controlplane.Client with configurable
// responses and call tracking.
type fakeControlPlane struct {
	mu sync.Mutex

	// Describe behavior
	Stack       *controlplane.Stack
	DescribeErr error

	// Declared template parameters
	Declared    []controlplane.DeclaredParameter
	DeclaredErr error

	// Mutating call behavior
	CreateErr error
	UpdateErr error
	DeleteErr map[string]error

	// Event feed: called once per EventsPage fetch with a running call
	// count (starting at 1) and the page token.
	Events func(call int, token string) (controlplane.EventPage, error)

	// Stack listing pages, keyed by page token ("" for the first).
	ListPages map[string]controlplane.StackPage

	ValidateErr error

	// Recorded calls
	CreatedSpecs []controlplane.StackSpec
	UpdatedSpecs []controlplane.StackSpec
	DeletedNames []string
	EventCalls   int
	ListFilters  [][]string
}

var _ controlplane.Client = (*fakeControlPlane)(nil)

func (f *fakeControlPlane) Create(_ context.Context, spec controlplane.StackSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.CreatedSpecs = append(f.CreatedSpecs, spec)
	return nil
}

func (f *fakeControlPlane) Update(_ context.Context, spec controlplane.StackSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.UpdatedSpecs = append(f.UpdatedSpecs, spec)
	return nil
}

func (f *fakeControlPlane) Delete(_ context.Context, name, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteErr[name]; err != nil {
		return err
	}
	f.DeletedNames = append(f.DeletedNames, name)
	return nil
}

func (f *fakeControlPlane) Describe(_ context.Context, name string) (*controlplane.Stack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}
	if f.Stack == nil {
		return nil, &controlplane.NotFoundError{Name: name}
	}
	return f.Stack, nil
}

func (f *fakeControlPlane) EventsPage(_ context.Context, _, token string) (controlplane.EventPage, error) {
	f.mu.Lock()
	f.EventCalls++
	call := f.EventCalls
	fn := f.Events
	f.mu.Unlock()

	if fn == nil {
		return controlplane.EventPage{}, nil
	}
	return fn(call, token)
}

func (f *fakeControlPlane) StacksPage(_ context.Context, token string, statusFilter []string) (controlplane.StackPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListFilters = append(f.ListFilters, statusFilter)
	return f.ListPages[token], nil
}

func (f *fakeControlPlane) DeclaredParameters(_ context.Context, _ controlplane.TemplateRef) ([]controlplane.DeclaredParameter, error) {
	if f.DeclaredErr != nil {
		return nil, f.DeclaredErr
	}
	return f.Declared, nil
}

func (f *fakeControlPlane) ValidateTemplate(_ context.Context, _ controlplane.TemplateRef) error {
	return f.ValidateErr
}

func (f *fakeControlPlane) eventCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.EventCalls
}

func (f *fakeControlPlane) deletedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.DeletedNames...)
}

// stubResolver resolves every source to a fixed template body.
type stubResolver struct {
	ref controlplane.TemplateRef
	err error
}

func (s *stubResolver) Resolve(_ context.Context, _ controlplane.TemplateSource) (controlplane.TemplateRef, error) {
	if s.err != nil {
		return controlplane.TemplateRef{}, s.err
	}
	return s.ref, nil
}

func newTestManager(fake *fakeControlPlane, sink EventSink) *Manager {
	return New(Config{
		Client:       fake,
		Resolver:     &stubResolver{ref: controlplane.TemplateRef{Body: `{"Resources":{}}`}},
		PollInterval: 5 * time.Millisecond, // keeps polling tests fast
		Events:       sink,
	})
}
