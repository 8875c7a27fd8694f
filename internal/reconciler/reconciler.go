package reconciler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stackctl/internal/controlplane"
	"stackctl/internal/events"
	"stackctl/pkg/logging"
)

// Manager is the entry point for stack operations. One Manager can serve
// any number of stacks; each operation gets its own poller and ledger.
type Manager struct {
	client       controlplane.Client
	resolver     TemplateResolver
	interval     time.Duration
	capabilities []string
	tags         map[string]string
	sink         EventSink
}

// New creates a Manager. Zero-value Config fields fall back to the
// package defaults.
func New(cfg Config) *Manager {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	capabilities := cfg.Capabilities
	if len(capabilities) == 0 {
		capabilities = DefaultCapabilities
	}

	return &Manager{
		client:       cfg.Client,
		resolver:     cfg.Resolver,
		interval:     interval,
		capabilities: capabilities,
		tags:         cfg.Tags,
		sink:         cfg.Events,
	}
}

// Deploy drives the named stack to the state described by the template
// source, creating or updating as needed, and blocks until the operation
// reaches a terminal state unless opts.Async is set. An update with no
// changes resolves successfully without polling.
func (m *Manager) Deploy(ctx context.Context, name string, src controlplane.TemplateSource, opts DeployOptions) error {
	action := ActionCreate
	if m.probeExists(ctx, name) {
		action = ActionUpdate
	}

	tmpl, err := m.resolver.Resolve(ctx, src)
	if err != nil {
		return fmt.Errorf("resolving template for stack %q: %w", name, err)
	}

	params, err := m.normalizeParameters(ctx, tmpl, opts.Parameters)
	if err != nil {
		return err
	}

	op := newOperation(name, action)
	spec := controlplane.StackSpec{
		Name:         name,
		Template:     tmpl,
		Parameters:   params,
		Capabilities: m.capabilities,
		Tags:         mergeTags(m.tags, opts.Tags),
		Token:        op.Token,
	}

	logging.Info("Reconciler", "Starting %s of stack %s", action, name)
	switch action {
	case ActionUpdate:
		if err := m.client.Update(ctx, spec); err != nil {
			if controlplane.IsNoChanges(err) {
				logging.Info("Reconciler", "No changes to deploy for stack %s", name)
				return nil
			}
			return err
		}
	default:
		if err := m.client.Create(ctx, spec); err != nil {
			return err
		}
	}

	if opts.Async {
		return nil
	}
	return newPoller(m.client, op, m.interval, m.sink).Wait(ctx)
}

// Delete removes the named stack. A stack that does not exist counts as
// already deleted.
func (m *Manager) Delete(ctx context.Context, name string, opts DeleteOptions) error {
	op := newOperation(name, ActionDelete)

	logging.Info("Reconciler", "Starting delete of stack %s", name)
	if err := m.client.Delete(ctx, name, op.Token); err != nil {
		if controlplane.IsNotFound(err) {
			return nil
		}
		return err
	}

	if opts.Async {
		return nil
	}
	return newPoller(m.client, op, m.interval, m.sink).Wait(ctx)
}

// Outputs returns the named stack's output key/value mapping.
func (m *Manager) Outputs(ctx context.Context, name string) (map[string]string, error) {
	stack, err := m.client.Describe(ctx, name)
	if err != nil {
		return nil, err
	}
	return stack.Outputs, nil
}

// Output returns a single output value by key.
func (m *Manager) Output(ctx context.Context, name, field string) (string, error) {
	outputs, err := m.Outputs(ctx, name)
	if err != nil {
		return "", err
	}
	value, ok := outputs[field]
	if !ok {
		return "", fmt.Errorf("stack %q has no output %q", name, field)
	}
	return value, nil
}

// Exists reports whether the named stack exists.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.client.Describe(ctx, name)
	if err != nil {
		if controlplane.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Validate resolves the template source and asks the control plane to
// validate it.
func (m *Manager) Validate(ctx context.Context, src controlplane.TemplateSource) error {
	tmpl, err := m.resolver.Resolve(ctx, src)
	if err != nil {
		return fmt.Errorf("resolving template: %w", err)
	}
	return m.client.ValidateTemplate(ctx, tmpl)
}

// probeExists decides create vs update. Any describe failure means the
// stack is treated as absent; only the "exists" status set selects
// update, so a stack stuck mid-operation never receives a second
// concurrent mutation from here.
func (m *Manager) probeExists(ctx context.Context, name string) bool {
	stack, err := m.client.Describe(ctx, name)
	if err != nil {
		return false
	}
	return events.ExistsStatuses[stack.Status]
}

// normalizeParameters reconciles caller-supplied parameters with the
// template's declared parameter set. Matching is case-insensitive on the
// key; declared parameters missing from the caller's set take the
// template default, and supplied keys the template does not declare are
// dropped silently.
func (m *Manager) normalizeParameters(ctx context.Context, tmpl controlplane.TemplateRef, supplied map[string]string) ([]controlplane.Parameter, error) {
	declared, err := m.client.DeclaredParameters(ctx, tmpl)
	if err != nil {
		return nil, fmt.Errorf("fetching declared parameters: %w", err)
	}

	lowered := make(map[string]string, len(supplied))
	for k, v := range supplied {
		lowered[strings.ToLower(k)] = v
	}

	params := make([]controlplane.Parameter, 0, len(declared))
	for _, d := range declared {
		value, ok := lowered[strings.ToLower(d.Key)]
		if !ok {
			value = d.Default
		}
		params = append(params, controlplane.Parameter{Key: d.Key, Value: value})
	}
	return params, nil
}

func mergeTags(base, overrides map[string]string) map[string]string {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
