// Package reconciler drives a CloudFormation stack to a desired state and
// reports progress synchronously.
//
// # Overview
//
// The Manager is the per-operation entry point. For a deploy it probes
// whether the stack exists to choose create vs update, resolves the
// template, normalizes caller parameters against the template's declared
// parameter set, issues the mutating call, and then hands off to a poller
// that watches the stack event log until the operation reaches a terminal
// state. Delete follows the same shape, with "stack not found" treated as
// success.
//
// # Components
//
//   - Manager: deploy/delete/outputs/cleanup/exists/validate operations
//   - poller: one per operation; ticks the event ledger, classifies
//     statuses, and completes the operation exactly once
//   - Cleanup: best-effort bulk scanner that ages and prunes stale stacks
//
// Each operation owns its own poller and event ledger; independent stacks
// can be reconciled concurrently without shared mutable state. Concurrent
// operations against the same stack name are a caller error.
package reconciler
