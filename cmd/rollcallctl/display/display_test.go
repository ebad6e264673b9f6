package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/concave-dev/rollcall/cmd/rollcallctl/client"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/concave-dev/rollcall/internal/attendance"
)

func sampleReport() *attendance.BatchReport {
	task := func(id string) attendance.SubmissionTask {
		return attendance.SubmissionTask{UserIdentifier: id, EventID: "EVT-1", SessionToken: "t"}
	}
	report := attendance.NewBatchReport([]attendance.SubmissionResult{
		attendance.Success(task("21BCE0001"), ""),
		attendance.Rejected(task("21BCE0002"), attendance.ReasonEventExpired, "QR code expired", ""),
		attendance.Failure(task("21BCE0003"), attendance.OutcomeTimeout, "deadline exceeded"),
	})
	report.RunID = "run-123"
	report.Mode = attendance.ModeQueue
	report.FellBack = true
	report.StartedAt = time.Now().Add(-1500 * time.Millisecond)
	report.FinishedAt = time.Now()
	return report
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	writeReportTable(&buf, sampleReport(), false)
	out := buf.String()

	for _, want := range []string{
		"USER", "21BCE0002", "EVENT_EXPIRED",
		"fell back from batch",
		"Successful: 1 of 3 (33.3%)",
		"Failed:     1 REJECTED, 1 TIMEOUT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "MESSAGE") {
		t.Error("non-verbose table should not include MESSAGE column")
	}
}

func TestWriteReportTableVerbose(t *testing.T) {
	var buf bytes.Buffer
	writeReportTable(&buf, sampleReport(), true)

	if !strings.Contains(buf.String(), "QR code expired") {
		t.Errorf("verbose table should include messages:\n%s", buf.String())
	}
}

func TestDisplayReportJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	config.Global.Output = "json"
	t.Cleanup(func() {
		stdout = prev
		config.Global.Output = "table"
	})

	DisplayReport(sampleReport())

	var decoded attendance.BatchReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded.Total != 3 || decoded.Results[1].Reason != attendance.ReasonEventExpired {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestDisplayProgress(t *testing.T) {
	var buf bytes.Buffer
	prev := stderr
	stderr = &buf
	t.Cleanup(func() { stderr = prev })

	DisplayProgress(attendance.ProgressSnapshot{
		Completed:  3,
		Total:      12,
		LastResult: attendance.SubmissionResult{UserIdentifier: "21BCE0003", Outcome: attendance.OutcomeSuccess},
	})

	if got := buf.String(); got != "[ 3/12] 21BCE0003: SUCCESS\n" {
		t.Errorf("progress line = %q", got)
	}
}

func TestWriteHealth(t *testing.T) {
	var buf bytes.Buffer
	writeHealth(&buf, &client.HealthResponse{
		Status:   "healthy",
		Version:  "0.1.0-dev",
		Uptime:   "2h0m0s",
		Batching: map[string]int64{"tasks_submitted": 12345, "runs_started": 7},
	}, "127.0.0.1:8008")
	out := buf.String()

	if !strings.Contains(out, "Status:   healthy") || !strings.Contains(out, "12,345") {
		t.Errorf("unexpected health output:\n%s", out)
	}
	if strings.Index(out, "runs_started") > strings.Index(out, "tasks_submitted") {
		t.Error("batching metrics should be sorted by name")
	}
}
