package events

import (
	"testing"

	"stackctl/internal/controlplane"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status string
		want   Outcome
	}{
		{"CREATE_COMPLETE", OutcomeSucceeded},
		{"UPDATE_COMPLETE", OutcomeSucceeded},
		{"DELETE_COMPLETE", OutcomeSucceeded},
		{"CREATE_FAILED", OutcomeFailed},
		{"UPDATE_FAILED", OutcomeFailed},
		{"DELETE_FAILED", OutcomeFailed},
		{"ROLLBACK_IN_PROGRESS", OutcomeFailed},
		{"ROLLBACK_FAILED", OutcomeFailed},
		{"ROLLBACK_COMPLETE", OutcomeFailed},
		{"UPDATE_ROLLBACK_IN_PROGRESS", OutcomeFailed},
		{"UPDATE_ROLLBACK_FAILED", OutcomeFailed},
		{"UPDATE_ROLLBACK_COMPLETE", OutcomeFailed},
		{"CREATE_IN_PROGRESS", OutcomePending},
		{"UPDATE_IN_PROGRESS", OutcomePending},
		{"DELETE_IN_PROGRESS", OutcomePending},
		{"REVIEW_IN_PROGRESS", OutcomePending},
		// Cleanup statuses embed failure-set prefixes but are still
		// in progress.
		{"UPDATE_COMPLETE_CLEANUP_IN_PROGRESS", OutcomePending},
		{"UPDATE_ROLLBACK_COMPLETE_CLEANUP_IN_PROGRESS", OutcomePending},
		{"SOME_FUTURE_STATUS", OutcomePending},
	}

	for _, tt := range tests {
		if got := Classify(tt.status); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsAuthoritative(t *testing.T) {
	tests := []struct {
		name         string
		resourceType string
		logicalID    string
		want         bool
	}{
		{"top-level stack event", StackResourceType, "demo", true},
		{"nested child stack", StackResourceType, "demo-child", false},
		{"plain resource with target name", "AWS::S3::Bucket", "demo", false},
		{"plain resource", "AWS::S3::Bucket", "Bucket", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := controlplane.Event{ResourceType: tt.resourceType, LogicalID: tt.logicalID}
			if got := IsAuthoritative(ev, "demo"); got != tt.want {
				t.Errorf("IsAuthoritative(%+v, demo) = %v, want %v", ev, got, tt.want)
			}
		})
	}
}
