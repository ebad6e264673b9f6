// Package attendance defines the data model of the submission pipeline:
// tasks, per-user results, progress snapshots and the aggregate report, plus
// the Submitter contract and the retry policy wrapped around it.
//
// Every task produces exactly one terminal SubmissionResult. Failures of an
// individual submission are values (an Outcome), never Go errors; only
// whole-invocation problems such as a ConfigurationError are returned as
// errors.
package attendance

import (
	"fmt"
	"time"
)

// Outcome is the terminal state of one submission.
type Outcome string

const (
	OutcomeSuccess        Outcome = "SUCCESS"
	OutcomeRejected       Outcome = "REJECTED"
	OutcomeNetworkFailure Outcome = "NETWORK_FAILURE"
	OutcomeTimeout        Outcome = "TIMEOUT"

	// OutcomeMissingToken marks a task that had no session token and was
	// never submitted.
	OutcomeMissingToken Outcome = "MISSING_TOKEN"

	// OutcomeCancelled marks a task that was never admitted because the run
	// was cancelled.
	OutcomeCancelled Outcome = "CANCELLED"
)

// IsValid reports whether o is one of the known outcomes.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSuccess, OutcomeRejected, OutcomeNetworkFailure, OutcomeTimeout,
		OutcomeMissingToken, OutcomeCancelled:
		return true
	}
	return false
}

// Transient reports whether the outcome is worth retrying.
func (o Outcome) Transient() bool {
	return o == OutcomeNetworkFailure || o == OutcomeTimeout
}

// SubmissionTask is one (user, attendance event) pair. Index is the position
// of the user in the caller's input and drives report ordering.
type SubmissionTask struct {
	Index          int
	UserIdentifier string
	SessionToken   string
	EventID        string
}

// HasToken reports whether the task carries a session token.
func (t SubmissionTask) HasToken() bool {
	return t.SessionToken != ""
}

// NewTasks pairs users with their session tokens for one event. The slices
// must have equal length; callers validate that first.
func NewTasks(users []string, eventID string, sessionTokens []string) []SubmissionTask {
	tasks := make([]SubmissionTask, len(users))
	for i, user := range users {
		tasks[i] = SubmissionTask{
			Index:          i,
			UserIdentifier: user,
			SessionToken:   sessionTokens[i],
			EventID:        eventID,
		}
	}
	return tasks
}

// SubmissionResult is the terminal outcome for one task.
type SubmissionResult struct {
	UserIdentifier string     `json:"identifier"`
	Outcome        Outcome    `json:"status"`
	Reason         ReasonCode `json:"code,omitempty"`
	Message        string     `json:"error,omitempty"`
	RawResponse    string     `json:"-"`
	Attempts       int        `json:"attempts"`
}

// Succeeded reports whether the submission was accepted upstream.
func (r SubmissionResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// String renders the result for log lines and CLI output.
func (r SubmissionResult) String() string {
	switch {
	case r.Outcome == OutcomeRejected:
		return fmt.Sprintf("%s: %s(%s)", r.UserIdentifier, r.Outcome, r.Reason)
	case r.Message != "":
		return fmt.Sprintf("%s: %s (%s)", r.UserIdentifier, r.Outcome, r.Message)
	default:
		return fmt.Sprintf("%s: %s", r.UserIdentifier, r.Outcome)
	}
}

// Success builds a successful result.
func Success(task SubmissionTask, raw string) SubmissionResult {
	return SubmissionResult{UserIdentifier: task.UserIdentifier, Outcome: OutcomeSuccess, RawResponse: raw, Attempts: 1}
}

// Rejected builds an explicit upstream rejection.
func Rejected(task SubmissionTask, reason ReasonCode, message, raw string) SubmissionResult {
	return SubmissionResult{
		UserIdentifier: task.UserIdentifier,
		Outcome:        OutcomeRejected,
		Reason:         reason,
		Message:        message,
		RawResponse:    raw,
		Attempts:       1,
	}
}

// Failure builds a non-rejection failure (network, timeout, missing token,
// cancelled).
func Failure(task SubmissionTask, outcome Outcome, message string) SubmissionResult {
	return SubmissionResult{
		UserIdentifier: task.UserIdentifier,
		Outcome:        outcome,
		Message:        message,
		Attempts:       1,
	}
}

// ProgressSnapshot is emitted after each task reaches a terminal state.
type ProgressSnapshot struct {
	Completed  int
	Total      int
	LastResult SubmissionResult
}

// ProgressSink receives progress notifications. Implementations must tolerate
// results arriving out of input order.
type ProgressSink interface {
	OnProgress(ProgressSnapshot)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(ProgressSnapshot)

// OnProgress implements ProgressSink.
func (f ProgressFunc) OnProgress(s ProgressSnapshot) {
	f(s)
}

// Notify delivers s to sink when sink is non-nil.
func Notify(sink ProgressSink, s ProgressSnapshot) {
	if sink != nil {
		sink.OnProgress(s)
	}
}

// Mode names the path that produced a report.
type Mode string

const (
	ModeBatch Mode = "batch"
	ModeQueue Mode = "queue"
)

// BatchReport aggregates the results of one pipeline invocation. Results are
// in input order.
type BatchReport struct {
	RunID      string             `json:"runId,omitempty"`
	Mode       Mode               `json:"mode,omitempty"`
	FellBack   bool               `json:"fellBack,omitempty"`
	Total      int                `json:"total"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []SubmissionResult `json:"results"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt"`
}

// NewBatchReport counts results so that Successful+Failed == Total.
func NewBatchReport(results []SubmissionResult) *BatchReport {
	report := &BatchReport{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		if r.Succeeded() {
			report.Successful++
		} else {
			report.Failed++
		}
	}
	return report
}

// Duration returns how long the run took.
func (r *BatchReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// CountByOutcome tallies results per outcome.
func (r *BatchReport) CountByOutcome() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, res := range r.Results {
		counts[res.Outcome]++
	}
	return counts
}
