// Package strategy decides how one attendance request is executed: as a
// single call to the rollcalld batch endpoint, or locally through the bounded
// queue.
//
// Large requests go to the batch endpoint when one is configured, reachable
// and the request fits its size cap. If that call fails for any reason other
// than cancellation (transport error, a rejected request, or a report that
// does not line up with the input) the request is re-run through the local
// queue exactly once. Callers always get one BatchReport in input order,
// whichever path produced it.
package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/utils"
	"github.com/concave-dev/rollcall/internal/validate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BatchEndpoint submits a whole request in one remote call. Transport-level
// failures must be returned as *attendance.TransportFailure.
type BatchEndpoint interface {
	SubmitBatch(ctx context.Context, eventID string, tasks []attendance.SubmissionTask) (*attendance.BatchReport, error)
}

// Availability is optionally implemented by a BatchEndpoint that can report
// whether it is reachable before a request is routed to it.
type Availability interface {
	Available(ctx context.Context) bool
}

// QueueRunner runs tasks locally with bounded concurrency.
// batching.Batcher implements it.
type QueueRunner interface {
	Run(ctx context.Context, tasks []attendance.SubmissionTask, sink attendance.ProgressSink) (*attendance.BatchReport, error)
}

// Option configures a Selector.
type Option func(*Selector)

// WithBatchEndpoint enables the batch path.
func WithBatchEndpoint(endpoint BatchEndpoint) Option {
	return func(s *Selector) { s.batch = endpoint }
}

// WithThreshold sets the minimum number of users routed to the batch path.
func WithThreshold(threshold int) Option {
	return func(s *Selector) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// WithMaxBatchSize sets the largest request the batch endpoint accepts.
// Larger requests run on the local queue.
func WithMaxBatchSize(size int) Option {
	return func(s *Selector) {
		if size > 0 {
			s.maxBatch = size
		}
	}
}

// WithTransitionHook registers a callback for state transitions.
func WithTransitionHook(fn TransitionFunc) Option {
	return func(s *Selector) { s.onTransition = fn }
}

// Selector routes requests between the batch endpoint and the local queue.
// It keeps no per-request state and is safe for concurrent use.
type Selector struct {
	queue        QueueRunner
	batch        BatchEndpoint
	threshold    int
	maxBatch     int
	onTransition TransitionFunc
	tracer       trace.Tracer
}

// NewSelector creates a Selector over the local queue runner.
func NewSelector(queue QueueRunner, opts ...Option) *Selector {
	s := &Selector{
		queue:     queue,
		threshold: config.DefaultBatchThreshold,
		maxBatch:  config.DefaultMaxBatchUsers,
		tracer:    otel.Tracer("github.com/concave-dev/rollcall/internal/strategy"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the batch threshold in effect.
func (s *Selector) Threshold() int {
	return s.threshold
}

// Process marks attendance for users at eventID. sessionTokens[i] belongs to
// users[i]; an empty token yields MISSING_TOKEN for that user.
//
// A ConfigurationError is returned before any remote call when the input is
// malformed, using the same event and identifier rules the daemon enforces.
// Otherwise the returned report always has one result per user in input
// order; a non-nil error alongside a report means the run was cancelled.
func (s *Selector) Process(ctx context.Context, users []string, eventID string, sessionTokens []string, sink attendance.ProgressSink) (*attendance.BatchReport, error) {
	if err := validateInput(users, eventID, sessionTokens); err != nil {
		return nil, err
	}

	runID := utils.MustGenerateID()
	m := newMachine(runID, s.onTransition)
	tasks := attendance.NewTasks(users, eventID, sessionTokens)

	ctx, span := s.tracer.Start(ctx, "strategy.Process", trace.WithAttributes(
		attribute.String("rollcall.run_id", runID),
		attribute.String("rollcall.event_id", eventID),
		attribute.Int("rollcall.users", len(users)),
	))
	defer span.End()

	var report *attendance.BatchReport
	var err error

	if s.useBatch(ctx, len(tasks)) {
		m.to(StateDispatchingBatch)
		report, err = s.dispatchBatch(ctx, eventID, tasks)
		if err != nil {
			if !shouldFallBack(ctx, err) {
				m.to(StateAggregating)
				report = cancelledReport(tasks)
				report.RunID = runID
				m.to(StateDone)
				return report, err
			}
			logging.Warn("Strategy: batch path failed for run %s, falling back to queue: %v",
				logging.FormatRunID(runID), err)
			m.to(StateFallback)
			m.to(StateDispatchingQueue)
			report, err = s.queue.Run(ctx, tasks, sink)
			if report != nil {
				report.FellBack = true
			}
		} else {
			emitProgress(sink, report)
		}
	} else {
		m.to(StateDispatchingQueue)
		report, err = s.queue.Run(ctx, tasks, sink)
	}

	m.to(StateAggregating)
	if report != nil {
		report.RunID = runID
	}
	span.SetAttributes(attribute.Bool("rollcall.fell_back", report != nil && report.FellBack))
	m.to(StateDone)

	if report != nil && err == nil {
		logging.Info("Strategy: run %s (%s) completed: %d/%d successful",
			logging.FormatRunID(runID), report.Mode, report.Successful, report.Total)
	}
	return report, err
}

// useBatch reports whether n users should go to the batch endpoint.
func (s *Selector) useBatch(ctx context.Context, n int) bool {
	if s.batch == nil || n < s.threshold {
		return false
	}
	if n > s.maxBatch {
		logging.Warn("Strategy: %d users exceed the batch limit of %d, using local queue", n, s.maxBatch)
		return false
	}
	if probe, ok := s.batch.(Availability); ok && !probe.Available(ctx) {
		logging.Warn("Strategy: batch endpoint unavailable, using local queue")
		return false
	}
	return true
}

// dispatchBatch calls the batch endpoint and checks the reply lines up with
// the input. A mismatched reply is reported as a TransportFailure.
func (s *Selector) dispatchBatch(ctx context.Context, eventID string, tasks []attendance.SubmissionTask) (*attendance.BatchReport, error) {
	startedAt := time.Now()
	remote, err := s.batch.SubmitBatch(ctx, eventID, tasks)
	if err != nil {
		return nil, err
	}
	if remote == nil || len(remote.Results) != len(tasks) {
		got := 0
		if remote != nil {
			got = len(remote.Results)
		}
		return nil, &attendance.TransportFailure{
			Endpoint: "batch",
			Err:      fmt.Errorf("malformed batch response: %d results for %d users", got, len(tasks)),
		}
	}
	for i, result := range remote.Results {
		if result.UserIdentifier != tasks[i].UserIdentifier {
			return nil, &attendance.TransportFailure{
				Endpoint: "batch",
				Err:      fmt.Errorf("malformed batch response: result %d is for %q, want %q", i, result.UserIdentifier, tasks[i].UserIdentifier),
			}
		}
	}

	report := attendance.NewBatchReport(remote.Results)
	report.Mode = attendance.ModeBatch
	report.StartedAt = startedAt
	report.FinishedAt = time.Now()
	return report, nil
}

// shouldFallBack reports whether a batch error may be retried locally.
// Cancellation is never retried; every other failure is.
func shouldFallBack(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() == nil
}

// cancelledReport covers a batch call abandoned by cancellation. The daemon
// may have marked some users, so the message says the outcome is unknown.
func cancelledReport(tasks []attendance.SubmissionTask) *attendance.BatchReport {
	startedAt := time.Now()
	results := make([]attendance.SubmissionResult, len(tasks))
	for i, task := range tasks {
		results[i] = attendance.Failure(task, attendance.OutcomeCancelled,
			"run cancelled while the batch call was in flight; outcome unknown")
	}
	report := attendance.NewBatchReport(results)
	report.Mode = attendance.ModeBatch
	report.StartedAt = startedAt
	report.FinishedAt = time.Now()
	return report
}

// emitProgress replays a batch report to sink one result at a time.
func emitProgress(sink attendance.ProgressSink, report *attendance.BatchReport) {
	for i, result := range report.Results {
		attendance.Notify(sink, attendance.ProgressSnapshot{
			Completed:  i + 1,
			Total:      report.Total,
			LastResult: result,
		})
	}
}

// validateInput rejects malformed requests before any remote call.
func validateInput(users []string, eventID string, sessionTokens []string) error {
	if len(users) == 0 {
		return attendance.NewConfigurationError("users", "at least one user is required")
	}
	if eventID == "" {
		return attendance.NewConfigurationError("eventID", "must not be empty")
	}
	if err := validate.EventIDFormat(eventID); err != nil {
		return attendance.NewConfigurationError("eventID", "%v", err)
	}
	if len(sessionTokens) != len(users) {
		return attendance.NewConfigurationError("sessionTokens",
			"got %d tokens for %d users", len(sessionTokens), len(users))
	}
	for i, user := range users {
		if err := validate.UserIdentifierFormat(user); err != nil {
			return attendance.NewConfigurationError("users", "users[%d]: %v", i, err)
		}
	}
	return nil
}
