package attendance

import "context"

// Submitter performs one attendance submission for one user.
//
// Implementations must always return a SubmissionResult and must not panic:
// upstream rejections map to OutcomeRejected, connection problems to
// OutcomeNetworkFailure and deadline expiry to OutcomeTimeout.
type Submitter interface {
	Submit(ctx context.Context, task SubmissionTask) SubmissionResult
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, task SubmissionTask) SubmissionResult

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, task SubmissionTask) SubmissionResult {
	return f(ctx, task)
}
