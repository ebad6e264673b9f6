package attendance

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewBatchReportCounts(t *testing.T) {
	task := SubmissionTask{UserIdentifier: "u"}
	results := []SubmissionResult{
		Success(task, ""),
		Rejected(task, ReasonEventExpired, "", ""),
		Failure(task, OutcomeNetworkFailure, "refused"),
		Success(task, ""),
		Failure(task, OutcomeMissingToken, ""),
	}

	report := NewBatchReport(results)

	if report.Total != 5 || report.Successful != 2 || report.Failed != 3 {
		t.Errorf("report = total %d successful %d failed %d, want 5/2/3",
			report.Total, report.Successful, report.Failed)
	}
	if report.Successful+report.Failed != report.Total {
		t.Error("successful + failed != total")
	}

	counts := report.CountByOutcome()
	if counts[OutcomeSuccess] != 2 || counts[OutcomeRejected] != 1 || counts[OutcomeMissingToken] != 1 {
		t.Errorf("CountByOutcome() = %v", counts)
	}
}

func TestNewTasksPreservesOrder(t *testing.T) {
	tasks := NewTasks([]string{"a", "b", "c"}, "EVT", []string{"t1", "", "t3"})

	for i, task := range tasks {
		if task.Index != i {
			t.Errorf("tasks[%d].Index = %d", i, task.Index)
		}
		if task.EventID != "EVT" {
			t.Errorf("tasks[%d].EventID = %q", i, task.EventID)
		}
	}
	if tasks[1].HasToken() {
		t.Error("tasks[1] should not have a token")
	}
}

func TestOutcomeClassification(t *testing.T) {
	tests := []struct {
		outcome   Outcome
		transient bool
	}{
		{OutcomeSuccess, false},
		{OutcomeRejected, false},
		{OutcomeNetworkFailure, true},
		{OutcomeTimeout, true},
		{OutcomeMissingToken, false},
		{OutcomeCancelled, false},
	}

	for _, tt := range tests {
		if !tt.outcome.IsValid() {
			t.Errorf("%s should be valid", tt.outcome)
		}
		if got := tt.outcome.Transient(); got != tt.transient {
			t.Errorf("%s.Transient() = %v, want %v", tt.outcome, got, tt.transient)
		}
	}
	if Outcome("MAYBE").IsValid() {
		t.Error("unknown outcome should not be valid")
	}
}

func TestParseReasonCode(t *testing.T) {
	tests := []struct {
		raw  string
		want ReasonCode
	}{
		{"EVENT_EXPIRED", ReasonEventExpired},
		{"qr-expired", ReasonEventExpired},
		{"Already Marked", ReasonAlreadyMarked},
		{" invalid_session ", ReasonSessionExpired},
		{"NOT_ENROLLED", ReasonNotEnrolled},
		{"INVALID_EVENT", ReasonInvalidEvent},
		{"SOMETHING_NEW", ReasonUnknown},
		{"", ReasonUnknown},
	}

	for _, tt := range tests {
		if got := ParseReasonCode(tt.raw); got != tt.want {
			t.Errorf("ParseReasonCode(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestIsSuccessStatus(t *testing.T) {
	for _, raw := range []string{"SUCCESS", "success", " ok "} {
		if !IsSuccessStatus(raw) {
			t.Errorf("IsSuccessStatus(%q) = false", raw)
		}
	}
	if IsSuccessStatus("ALREADY_MARKED") {
		t.Error("IsSuccessStatus(ALREADY_MARKED) = true")
	}
}

func TestTypedErrors(t *testing.T) {
	cfgErr := fmt.Errorf("process: %w", NewConfigurationError("sessionTokens", "got %d, want %d", 2, 3))
	if !IsConfigurationError(cfgErr) {
		t.Error("wrapped ConfigurationError not detected")
	}
	if IsTransportFailure(cfgErr) {
		t.Error("ConfigurationError detected as TransportFailure")
	}

	root := errors.New("connection refused")
	tf := fmt.Errorf("batch: %w", &TransportFailure{Endpoint: "http://127.0.0.1:8008", Err: root})
	if !IsTransportFailure(tf) {
		t.Error("wrapped TransportFailure not detected")
	}
	if !errors.Is(tf, root) {
		t.Error("TransportFailure should unwrap to its cause")
	}
}

func TestProgressFuncAndNotify(t *testing.T) {
	var got []int
	sink := ProgressFunc(func(s ProgressSnapshot) { got = append(got, s.Completed) })

	Notify(sink, ProgressSnapshot{Completed: 1, Total: 2})
	Notify(nil, ProgressSnapshot{Completed: 2, Total: 2})

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("sink received %v, want [1]", got)
	}
}
