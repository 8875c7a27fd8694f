// Package controlplane defines the narrow client surface stackctl needs from
// the CloudFormation control plane, plus the AWS-backed implementation of it.
//
// # Overview
//
// The rest of the codebase only consumes the Client interface. All remote
// failures are normalized into a small set of typed errors (NotFoundError,
// ThrottledError, NoChangesError) so callers can branch with errors.As
// instead of matching AWS error codes or message text themselves.
//
// # Components
//
//   - Client: create/update/delete a stack, describe status, list stacks,
//     and fetch the paginated stack event log
//   - AWSClient: Client implementation wrapping the aws-sdk-go-v2
//     CloudFormation service client
//   - Error classification: maps smithy API errors onto the typed errors
package controlplane
