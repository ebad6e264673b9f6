// Package batching runs attendance submissions through a bounded worker pool
// so that the upstream portal never sees more than C concurrent requests from
// one run, with a delay D between successive releases by the same worker.
//
// SCHEDULING MODEL:
// A run starts min(C, pending) workers that pull task indices from a shared
// channel. Each worker serializes its own wait-then-submit loop: it submits
// its first task immediately and waits D before every later one. The run
// ends when all workers have returned (an explicit WaitGroup join).
//
// ORDERING AND PROGRESS:
// Results are stored by input index, so the report is in input order no
// matter which submission finishes first. A progress snapshot is emitted
// after every terminal result; emission is serialized so Completed never
// decreases.
//
// CANCELLATION:
// The run context is checked before a worker admits its next task and while
// it waits. Submissions already in flight finish under their own per-call
// timeout. Tasks that were never admitted are reported as CANCELLED and the
// partial report is returned along with the context error.
package batching

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/concave-dev/rollcall/internal/batching"

// Batcher runs SubmissionTasks with bounded concurrency. A Batcher holds no
// per-run state and may serve concurrent runs.
type Batcher struct {
	submitter   attendance.Submitter
	concurrency int
	waveDelay   time.Duration
	tracer      trace.Tracer

	// Metrics for monitoring and observability
	runsStarted    int64
	tasksSubmitted int64
	inFlight       int64
}

// NewBatcher creates a Batcher that submits through submitter using the
// pacing in config. A nil config uses DefaultConfig.
func NewBatcher(submitter attendance.Submitter, config *Config) *Batcher {
	if config == nil {
		config = DefaultConfig()
	}
	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batcher{
		submitter:   submitter,
		concurrency: concurrency,
		waveDelay:   config.GetWaveDelay(),
		tracer:      otel.Tracer(tracerName),
	}
}

// run holds the state of one Run invocation.
type run struct {
	id      string
	tasks   []attendance.SubmissionTask
	results []attendance.SubmissionResult
	settled []bool
	sink    attendance.ProgressSink

	mu        sync.Mutex
	completed int
}

// record stores the terminal result for task idx and emits progress.
func (r *run) record(idx int, result attendance.SubmissionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settled[idx] {
		return
	}
	r.settled[idx] = true
	r.results[idx] = result
	r.completed++

	attendance.Notify(r.sink, attendance.ProgressSnapshot{
		Completed:  r.completed,
		Total:      len(r.tasks),
		LastResult: result,
	})
}

// Run submits every task and returns a report in input order. Tasks without
// a session token fail immediately as MISSING_TOKEN. The returned error is
// non-nil only when ctx was cancelled; the report is still complete, with
// unadmitted tasks marked CANCELLED.
func (b *Batcher) Run(ctx context.Context, tasks []attendance.SubmissionTask, sink attendance.ProgressSink) (*attendance.BatchReport, error) {
	r := &run{
		id:      utils.MustGenerateID(),
		tasks:   tasks,
		results: make([]attendance.SubmissionResult, len(tasks)),
		settled: make([]bool, len(tasks)),
		sink:    sink,
	}
	startedAt := time.Now()
	atomic.AddInt64(&b.runsStarted, 1)

	ctx, span := b.tracer.Start(ctx, "batching.Run", trace.WithAttributes(
		attribute.String("rollcall.run_id", r.id),
		attribute.Int("rollcall.tasks", len(tasks)),
		attribute.Int("rollcall.concurrency", b.concurrency),
	))
	defer span.End()

	logging.Info("Batcher: run %s starting with %d tasks (concurrency=%d, delay=%v)",
		logging.FormatRunID(r.id), len(tasks), b.concurrency, b.waveDelay)

	pending := make(chan int, len(tasks))
	for i, task := range tasks {
		if !task.HasToken() {
			logging.Warn("Batcher: %s has no session token, skipping submission",
				logging.FormatUserID(task.UserIdentifier))
			r.record(i, attendance.Failure(task, attendance.OutcomeMissingToken, "no session token"))
			continue
		}
		pending <- i
	}
	close(pending)

	workers := min(b.concurrency, len(pending))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()
			b.worker(ctx, r, worker, pending)
		}(w + 1)
	}
	wg.Wait()

	// Anything still queued was never admitted.
	for idx := range pending {
		r.record(idx, attendance.Failure(tasks[idx], attendance.OutcomeCancelled, "run cancelled before submission"))
	}

	report := attendance.NewBatchReport(r.results)
	report.RunID = r.id
	report.Mode = attendance.ModeQueue
	report.StartedAt = startedAt
	report.FinishedAt = time.Now()

	span.SetAttributes(
		attribute.Int("rollcall.successful", report.Successful),
		attribute.Int("rollcall.failed", report.Failed),
	)

	if err := ctx.Err(); err != nil {
		logging.Warn("Batcher: run %s cancelled after %d/%d submissions",
			logging.FormatRunID(r.id), report.Total-report.CountByOutcome()[attendance.OutcomeCancelled], report.Total)
		return report, err
	}

	logging.Info("Batcher: run %s finished: %d successful, %d failed in %v",
		logging.FormatRunID(r.id), report.Successful, report.Failed, report.Duration().Round(time.Millisecond))
	return report, nil
}

// worker pulls task indices until the queue drains or ctx is cancelled.
func (b *Batcher) worker(ctx context.Context, r *run, worker int, pending <-chan int) {
	first := true
	for {
		if !first && !sleepWithContext(ctx, b.waveDelay) {
			return
		}
		if ctx.Err() != nil {
			return
		}

		idx, ok := <-pending
		if !ok {
			return
		}
		if ctx.Err() != nil {
			r.record(idx, attendance.Failure(r.tasks[idx], attendance.OutcomeCancelled, "run cancelled before submission"))
			return
		}
		first = false

		r.record(idx, b.submit(ctx, worker, r.tasks[idx]))
	}
}

// submit performs one admitted submission. In-flight calls are detached from
// run cancellation and bounded by the submitter's own timeout.
func (b *Batcher) submit(ctx context.Context, worker int, task attendance.SubmissionTask) attendance.SubmissionResult {
	ctx, span := b.tracer.Start(ctx, "batching.submit", trace.WithAttributes(
		attribute.Int("rollcall.task_index", task.Index),
		attribute.Int("rollcall.worker", worker),
	))
	defer span.End()

	atomic.AddInt64(&b.inFlight, 1)
	atomic.AddInt64(&b.tasksSubmitted, 1)
	defer atomic.AddInt64(&b.inFlight, -1)

	logging.Debug("Batcher: worker %d submitting for %s", worker, logging.FormatUserID(task.UserIdentifier))
	result := b.submitter.Submit(context.WithoutCancel(ctx), task)

	span.SetAttributes(
		attribute.String("rollcall.outcome", string(result.Outcome)),
		attribute.Int("rollcall.attempts", result.Attempts),
	)
	if !result.Succeeded() {
		logging.Debug("Batcher: %s", result)
	}
	return result
}

// GetMetrics returns counters for monitoring and observability.
func (b *Batcher) GetMetrics() map[string]int64 {
	return map[string]int64{
		"runs_started":    atomic.LoadInt64(&b.runsStarted),
		"tasks_submitted": atomic.LoadInt64(&b.tasksSubmitted),
		"in_flight":       atomic.LoadInt64(&b.inFlight),
		"concurrency":     int64(b.concurrency),
		"wave_delay_ms":   b.waveDelay.Milliseconds(),
	}
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
