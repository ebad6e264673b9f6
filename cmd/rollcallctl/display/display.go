// Package display provides output formatting for rollcallctl.
//
// Reports and health information are rendered either as aligned tables
// (text/tabwriter) or as indented JSON, following --output. Progress lines
// go to stderr so that JSON on stdout stays machine-readable.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/concave-dev/rollcall/cmd/rollcallctl/client"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/dustin/go-humanize"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// DisplayProgress prints one progress line per completed user.
func DisplayProgress(s attendance.ProgressSnapshot) {
	width := len(fmt.Sprint(s.Total))
	fmt.Fprintf(stderr, "[%*d/%d] %s\n", width, s.Completed, s.Total, s.LastResult)
}

// DisplayReport prints the final report of a mark run.
func DisplayReport(report *attendance.BatchReport) {
	if config.Global.Output == "json" {
		writeJSON(stdout, report)
		return
	}
	writeReportTable(stdout, report, config.Global.Verbose)
}

// DisplayHealth prints the daemon health status.
func DisplayHealth(health *client.HealthResponse, apiAddr string) {
	if config.Global.Output == "json" {
		writeJSON(stdout, health)
		return
	}
	writeHealth(stdout, health, apiAddr)
}

func writeJSON(w io.Writer, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(w, "Error encoding JSON output")
	}
}

func writeReportTable(w io.Writer, report *attendance.BatchReport, verbose bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if verbose {
		fmt.Fprintln(tw, "#\tUSER\tSTATUS\tCODE\tATTEMPTS\tMESSAGE")
	} else {
		fmt.Fprintln(tw, "#\tUSER\tSTATUS\tCODE")
	}
	for i, result := range report.Results {
		code := string(result.Reason)
		if code == "" {
			code = "-"
		}
		if verbose {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
				i+1, result.UserIdentifier, result.Outcome, code, result.Attempts, result.Message)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, result.UserIdentifier, result.Outcome, code)
		}
	}
	tw.Flush()

	fmt.Fprintln(w)
	mode := string(report.Mode)
	if report.FellBack {
		mode += " (fell back from batch)"
	}
	fmt.Fprintf(w, "Run:        %s\n", logging.FormatRunID(report.RunID))
	fmt.Fprintf(w, "Mode:       %s\n", mode)
	fmt.Fprintf(w, "Successful: %s of %s (%s%%)\n",
		humanize.Comma(int64(report.Successful)), humanize.Comma(int64(report.Total)),
		humanize.FtoaWithDigits(successRate(report), 1))
	if report.Failed > 0 {
		fmt.Fprintf(w, "Failed:     %s\n", formatOutcomeCounts(report.CountByOutcome()))
	}
	if d := report.Duration(); d > 0 {
		fmt.Fprintf(w, "Took:       %v\n", d.Round(time.Millisecond))
	}
}

func writeHealth(w io.Writer, health *client.HealthResponse, apiAddr string) {
	fmt.Fprintf(w, "Daemon:   %s\n", apiAddr)
	fmt.Fprintf(w, "Status:   %s\n", health.Status)
	fmt.Fprintf(w, "Version:  %s\n", health.Version)
	fmt.Fprintf(w, "Uptime:   %s\n", health.Uptime)
	if !health.Timestamp.IsZero() {
		fmt.Fprintf(w, "Checked:  %s\n", humanize.Time(health.Timestamp))
	}

	if len(health.Batching) == 0 {
		return
	}
	keys := make([]string, 0, len(health.Batching))
	for k := range health.Batching {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "\nBatching:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%s\n", k, humanize.Comma(health.Batching[k]))
	}
	tw.Flush()
}

func successRate(report *attendance.BatchReport) float64 {
	if report.Total == 0 {
		return 0
	}
	return float64(report.Successful) * 100 / float64(report.Total)
}

// formatOutcomeCounts renders non-success counts in a stable order,
// e.g. "2 REJECTED, 1 TIMEOUT".
func formatOutcomeCounts(counts map[attendance.Outcome]int) string {
	order := []attendance.Outcome{
		attendance.OutcomeRejected,
		attendance.OutcomeNetworkFailure,
		attendance.OutcomeTimeout,
		attendance.OutcomeMissingToken,
		attendance.OutcomeCancelled,
	}
	out := ""
	for _, outcome := range order {
		if n := counts[outcome]; n > 0 {
			if out != "" {
				out += ", "
			}
			out += fmt.Sprintf("%s %s", humanize.Comma(int64(n)), outcome)
		}
	}
	return out
}

// DisplayNotice prints a one-line notice to stderr regardless of log level.
func DisplayNotice(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
}
