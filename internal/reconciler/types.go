package reconciler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stackctl/internal/controlplane"
)

// Action identifies the kind of stack operation in flight.
type Action string

const (
	// ActionCreate creates a new stack.
	ActionCreate Action = "create"

	// ActionUpdate updates an existing stack.
	ActionUpdate Action = "update"

	// ActionDelete deletes a stack.
	ActionDelete Action = "delete"
)

// DefaultPollInterval is how often the poller checks the event log when
// the caller does not configure an interval.
const DefaultPollInterval = 5 * time.Second

// DefaultCapabilities is the capability set sent with create and update
// calls unless the configuration overrides it.
var DefaultCapabilities = []string{"CAPABILITY_IAM", "CAPABILITY_NAMED_IAM"}

// Operation describes one tracked stack operation. Its start time is the
// authoritative cutoff separating this operation's events from stale
// events left by a prior operation on the same name. Immutable once
// created.
type Operation struct {
	Target    string
	Action    Action
	StartedAt time.Time

	// Token is the idempotency token passed to the mutating call.
	Token string
}

func newOperation(target string, action Action) Operation {
	return Operation{
		Target:    target,
		Action:    action,
		StartedAt: time.Now(),
		Token:     uuid.NewString(),
	}
}

// EventSink receives each new stack event, in ascending timestamp order,
// as the poller observes it. Used for progress reporting; a nil sink
// disables it.
type EventSink func(op Operation, ev controlplane.Event)

// TemplateResolver turns an arbitrary template source into the body or
// remote reference the control plane accepts.
type TemplateResolver interface {
	Resolve(ctx context.Context, src controlplane.TemplateSource) (controlplane.TemplateRef, error)
}

// Config configures a Manager.
type Config struct {
	// Client is the control-plane client. Required.
	Client controlplane.Client

	// Resolver resolves template sources. Required for Deploy/Validate.
	Resolver TemplateResolver

	// PollInterval overrides DefaultPollInterval when positive.
	PollInterval time.Duration

	// Capabilities overrides DefaultCapabilities when non-empty.
	Capabilities []string

	// Tags are applied to every deployed stack, merged under any
	// per-deploy tags.
	Tags map[string]string

	// Events receives observed stack events. Optional.
	Events EventSink
}

// DeployOptions carries per-deploy settings.
type DeployOptions struct {
	// Parameters are caller-supplied template parameters. Keys are
	// matched case-insensitively against the template's declared
	// parameter set; undeclared keys are dropped.
	Parameters map[string]string

	// Tags are merged over the Manager-level tags.
	Tags map[string]string

	// Async returns as soon as the mutating call is accepted, without
	// waiting for the operation to reach a terminal state.
	Async bool
}

// DeleteOptions carries per-delete settings.
type DeleteOptions struct {
	Async bool
}
