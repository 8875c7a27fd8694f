package events

import "stackctl/internal/controlplane"

// Outcome is the classification of a raw stack status code.
type Outcome int

const (
	// OutcomePending means the operation is still in progress.
	OutcomePending Outcome = iota

	// OutcomeSucceeded means the operation completed.
	OutcomeSucceeded

	// OutcomeFailed means the operation reached a failure or rollback state.
	OutcomeFailed
)

// String makes Outcome satisfy the fmt.Stringer interface.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "Succeeded"
	case OutcomeFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

// StackResourceType is the resource type of the top-level stack itself.
// Only events of this type can terminate an operation.
const StackResourceType = "AWS::CloudFormation::Stack"

var successStatuses = map[string]bool{
	"CREATE_COMPLETE": true,
	"UPDATE_COMPLETE": true,
	"DELETE_COMPLETE": true,
}

var failureStatuses = map[string]bool{
	"CREATE_FAILED":               true,
	"UPDATE_FAILED":               true,
	"DELETE_FAILED":               true,
	"ROLLBACK_IN_PROGRESS":        true,
	"ROLLBACK_FAILED":             true,
	"ROLLBACK_COMPLETE":           true,
	"UPDATE_ROLLBACK_IN_PROGRESS": true,
	"UPDATE_ROLLBACK_FAILED":      true,
	"UPDATE_ROLLBACK_COMPLETE":    true,
}

// Statuses that embed a failure-set prefix but are still in progress.
// Checked before the failure set so prefix overlap cannot misclassify.
var cleanupStatuses = map[string]bool{
	"UPDATE_COMPLETE_CLEANUP_IN_PROGRESS":          true,
	"UPDATE_ROLLBACK_COMPLETE_CLEANUP_IN_PROGRESS": true,
}

// ExistsStatuses are the stack statuses under which a create-or-update
// probe resolves to update. Anything else (including any error from the
// probe) resolves to create.
var ExistsStatuses = map[string]bool{
	"CREATE_COMPLETE":          true,
	"UPDATE_COMPLETE":          true,
	"ROLLBACK_COMPLETE":        true,
	"UPDATE_ROLLBACK_COMPLETE": true,
}

// StableStatuses lists the terminal states the cleanup scanner considers.
// In-progress stacks are skipped; DELETE_COMPLETE stacks are already gone.
var StableStatuses = []string{
	"CREATE_COMPLETE",
	"CREATE_FAILED",
	"ROLLBACK_COMPLETE",
	"ROLLBACK_FAILED",
	"UPDATE_COMPLETE",
	"UPDATE_ROLLBACK_COMPLETE",
	"UPDATE_ROLLBACK_FAILED",
	"DELETE_FAILED",
}

// Classify maps a raw status code onto an Outcome. Unknown codes and all
// in-progress variants are pending.
func Classify(status string) Outcome {
	switch {
	case cleanupStatuses[status]:
		return OutcomePending
	case successStatuses[status]:
		return OutcomeSucceeded
	case failureStatuses[status]:
		return OutcomeFailed
	default:
		return OutcomePending
	}
}

// IsAuthoritative reports whether ev is the terminal signal for the stack
// named target. Nested child stacks emit the same resource type and status
// vocabulary under their own logical IDs and must never end the parent's
// operation, so both the type and the logical ID have to match.
func IsAuthoritative(ev controlplane.Event, target string) bool {
	return ev.ResourceType == StackResourceType && ev.LogicalID == target
}
