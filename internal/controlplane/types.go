package controlplane

import (
	"context"
	"time"
)

// Event is one entry from a stack's append-only event log.
//
// The event ID is unique only within one stack's lifetime; a deleted and
// re-created stack of the same name starts a fresh ID space.
type Event struct {
	// ID uniquely identifies the event within the stack's lifetime.
	ID string

	// ResourceType is the CloudFormation resource type the event refers to
	// (e.g. "AWS::CloudFormation::Stack", "AWS::S3::Bucket").
	ResourceType string

	// LogicalID is the logical resource ID within the template. For the
	// top-level stack resource it equals the stack name.
	LogicalID string

	// Status is the raw resource status code (e.g. "CREATE_IN_PROGRESS").
	Status string

	// Reason is the optional human-readable status reason.
	Reason string

	// Timestamp is when the control plane recorded the event.
	Timestamp time.Time
}

// EventPage is one page of the stack event log, newest events first.
type EventPage struct {
	Events []Event

	// NextToken is the pagination token for the next (older) page.
	// Empty means there are no further pages.
	NextToken string
}

// Stack describes the current state of a deployed stack.
type Stack struct {
	Name         string
	Status       string
	StatusReason string
	CreationTime time.Time

	// Outputs maps output key to resolved value.
	Outputs map[string]string
}

// StackSummary is one entry from a stack listing.
type StackSummary struct {
	Name         string
	Status       string
	CreationTime time.Time
}

// StackPage is one page of a stack listing.
type StackPage struct {
	Stacks    []StackSummary
	NextToken string
}

// TemplateRef points at a template, either by serialized body or by a
// location the control plane fetches itself. Exactly one field is set.
type TemplateRef struct {
	Body string
	URL  string
}

// TemplateSource is the caller-facing, pre-resolution description of a
// template. The CLI shell fills in whichever field matches its input;
// the resolver turns it into a TemplateRef. At most one field is set.
type TemplateSource struct {
	// Inline is an in-memory template structure.
	Inline map[string]interface{}

	// Text is serialized template content (JSON or YAML).
	Text string

	// Path is a local file path to template content.
	Path string

	// URL is a remote template location the control plane can fetch.
	URL string
}

// Parameter is a single template parameter key/value pair.
type Parameter struct {
	Key   string
	Value string
}

// DeclaredParameter is a parameter declared by a template, with its
// default value if any.
type DeclaredParameter struct {
	Key     string
	Default string
}

// StackSpec carries everything a create or update call needs.
type StackSpec struct {
	Name         string
	Template     TemplateRef
	Parameters   []Parameter
	Capabilities []string
	Tags         map[string]string

	// Token is the idempotency token for the mutating call.
	Token string
}

// Client is the control-plane surface the reconciliation core consumes.
// All methods are remote calls; failures are classified into the typed
// errors in this package where the caller needs to distinguish them.
type Client interface {
	// Create starts creation of a new stack.
	Create(ctx context.Context, spec StackSpec) error

	// Update starts an update of an existing stack. A diff-less update
	// fails with NoChangesError.
	Update(ctx context.Context, spec StackSpec) error

	// Delete starts deletion of a stack.
	Delete(ctx context.Context, name, token string) error

	// Describe returns the stack's current state, or NotFoundError.
	Describe(ctx context.Context, name string) (*Stack, error)

	// EventsPage fetches one page of the stack's event log, newest first.
	// pageToken is empty for the first page.
	EventsPage(ctx context.Context, name, pageToken string) (EventPage, error)

	// StacksPage fetches one page of the account's stack listing,
	// restricted to the given status codes.
	StacksPage(ctx context.Context, pageToken string, statusFilter []string) (StackPage, error)

	// DeclaredParameters returns the parameter set the template declares.
	DeclaredParameters(ctx context.Context, tmpl TemplateRef) ([]DeclaredParameter, error)

	// ValidateTemplate asks the control plane to validate the template.
	ValidateTemplate(ctx context.Context, tmpl TemplateRef) error
}
