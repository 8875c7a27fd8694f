package controlplane

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// NotFoundError indicates the named stack does not exist. For the delete
// path this is success; for the create-or-update probe it selects create.
type NotFoundError struct {
	// Name is the stack that could not be found.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stack %q does not exist", e.Name)
}

// ThrottledError indicates the control plane rate-limited the call. It is
// transient: callers skip the current tick and retry on the next one, and
// it is never surfaced to the CLI caller.
type ThrottledError struct {
	// Op names the throttled remote call.
	Op string
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("rate limited during %s", e.Op)
}

// NoChangesError indicates an update call found nothing to change. It is
// swallowed by the reconciler: a no-op update resolves successfully.
type NoChangesError struct {
	Name string
}

func (e *NoChangesError) Error() string {
	return fmt.Sprintf("no updates to be performed on stack %q", e.Name)
}

// OperationFailedError indicates the operation reached a terminal failure
// state. It carries the remote status reason when one was reported.
type OperationFailedError struct {
	Target string
	Status string
	Reason string
}

func (e *OperationFailedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("stack %q reached %s: %s", e.Target, e.Status, e.Reason)
	}
	return fmt.Sprintf("stack %q reached failure state %s", e.Target, e.Status)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsThrottled reports whether err is a ThrottledError.
func IsThrottled(err error) bool {
	var th *ThrottledError
	return errors.As(err, &th)
}

// IsNoChanges reports whether err is a NoChangesError.
func IsNoChanges(err error) bool {
	var nc *NoChangesError
	return errors.As(err, &nc)
}

// Throttling error codes across AWS services. CloudFormation itself uses
// "Throttling"; the others show up behind proxies and shared endpoints.
var throttlingCodes = map[string]bool{
	"Throttling":               true,
	"ThrottlingException":      true,
	"RequestLimitExceeded":     true,
	"TooManyRequestsException": true,
}

// classify normalizes an AWS SDK error into this package's typed errors.
// CloudFormation reports "stack does not exist" and "no updates" as
// ValidationError with a conventional message, so message text is part of
// the contract here, matching what the service actually returns.
func classify(err error, op, name string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s %q: %w", op, name, err)
	}

	code := apiErr.ErrorCode()
	msg := apiErr.ErrorMessage()

	if throttlingCodes[code] {
		return &ThrottledError{Op: op}
	}
	if code == "ValidationError" {
		if strings.Contains(msg, "does not exist") {
			return &NotFoundError{Name: name}
		}
		if strings.Contains(msg, "No updates are to be performed") {
			return &NoChangesError{Name: name}
		}
	}

	return fmt.Errorf("%s %q: %w", op, name, err)
}
