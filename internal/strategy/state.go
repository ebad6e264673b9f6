package strategy

import "github.com/concave-dev/rollcall/internal/logging"

// State is a step of one Process invocation.
//
//	Idle -> DispatchingBatch -> Aggregating -> Done
//	Idle -> DispatchingBatch -> Fallback -> DispatchingQueue -> Aggregating -> Done
//	Idle -> DispatchingQueue -> Aggregating -> Done
//
// Fallback is entered at most once per invocation.
type State string

const (
	StateIdle             State = "idle"
	StateDispatchingBatch State = "dispatching(batch)"
	StateDispatchingQueue State = "dispatching(queue)"
	StateFallback         State = "fallback"
	StateAggregating      State = "aggregating"
	StateDone             State = "done"
)

// TransitionFunc observes state changes of a Process invocation.
type TransitionFunc func(runID string, from, to State)

// machine tracks the state of one invocation.
type machine struct {
	runID   string
	current State
	hook    TransitionFunc
}

func newMachine(runID string, hook TransitionFunc) *machine {
	return &machine{runID: runID, current: StateIdle, hook: hook}
}

func (m *machine) to(next State) {
	prev := m.current
	m.current = next
	logging.Debug("Strategy: run %s %s -> %s", logging.FormatRunID(m.runID), prev, next)
	if m.hook != nil {
		m.hook(m.runID, prev, next)
	}
}
