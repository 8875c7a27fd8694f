// Package events turns the raw CloudFormation stack event log into the
// signals the poller acts on.
//
// Two concerns live here:
//
//   - Ledger: incremental, deduplicated reads of the paginated,
//     newest-first event feed. Each Pull returns only events not surfaced
//     before, sorted oldest first, and stops paging once a page reaches
//     back past the operation's start time.
//   - Status classification: maps raw status codes onto
//     Pending/Succeeded/Failed, and decides whether an event is the
//     authoritative terminal signal for the tracked stack (as opposed to
//     a nested child stack emitting the same status vocabulary).
package events
