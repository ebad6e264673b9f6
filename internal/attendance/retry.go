package attendance

import (
	"context"
	"time"

	"github.com/concave-dev/rollcall/internal/logging"
)

// RetrySubmitter wraps a Submitter with bounded exponential backoff.
//
// Only transient outcomes (network failure, timeout) are retried. Explicit
// rejections are authoritative and returned after a single call. Attempt n
// waits BaseDelay*2^(n-1) before attempt n+1.
type RetrySubmitter struct {
	Next        Submitter
	MaxAttempts int
	BaseDelay   time.Duration
}

// NewRetrySubmitter creates a RetrySubmitter. Non-positive maxAttempts
// means a single attempt.
func NewRetrySubmitter(next Submitter, maxAttempts int, baseDelay time.Duration) *RetrySubmitter {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetrySubmitter{
		Next:        next,
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
	}
}

// Submit implements Submitter.
func (r *RetrySubmitter) Submit(ctx context.Context, task SubmissionTask) SubmissionResult {
	// A zero-value RetrySubmitter still makes one attempt.
	maxAttempts := max(r.MaxAttempts, 1)

	var result SubmissionResult
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result = r.Next.Submit(ctx, task)
		result.Attempts = attempt

		if !result.Outcome.Transient() || attempt == maxAttempts {
			return result
		}

		wait := r.Backoff(attempt)
		logging.Debug("Retry: %s attempt %d/%d got %s, retrying in %v",
			logging.FormatUserID(task.UserIdentifier), attempt, maxAttempts, result.Outcome, wait)

		if !sleepWithContext(ctx, wait) {
			return result
		}
	}
	return result
}

// Backoff returns the wait after the given (1-based) failed attempt.
func (r *RetrySubmitter) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return r.BaseDelay * time.Duration(1<<(attempt-1))
}

// sleepWithContext waits for d or until ctx is done. Returns false if the
// context ended first.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
