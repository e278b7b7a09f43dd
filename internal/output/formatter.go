package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/volleyhttp/volley/internal/config"
	"github.com/volleyhttp/volley/internal/runner"
	"github.com/volleyhttp/volley/internal/stats"
)

// Formatter renders burst progress and the final report for the console.
type Formatter struct {
	Verbose bool
	NoColor bool

	scheme *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatHeader formats the banner printed before the burst is dispatched.
func (f *Formatter) FormatHeader(cfg *config.RequestConfig) string {
	var buf strings.Builder

	buf.WriteString(f.scheme.Heading.Sprint("Starting stress test") + "\n")
	buf.WriteString(fmt.Sprintf("  Target:     %s %s\n",
		f.scheme.Method.Sprint(cfg.Method), f.scheme.URL.Sprint(cfg.URL)))
	buf.WriteString(fmt.Sprintf("  Requests:   %d concurrent\n", cfg.Requests))
	buf.WriteString(fmt.Sprintf("  Timeout:    %ds per request\n", cfg.Timeout))
	buf.WriteString(strings.Repeat("=", 60) + "\n")

	return buf.String()
}

// FormatOutcome formats one per-request progress line.
func (f *Formatter) FormatOutcome(o runner.Outcome) string {
	if o.TransportError() {
		return fmt.Sprintf("%s Request %d: %s\n", ErrorIcon(f.NoColor), o.Seq, o.Err)
	}

	statusColor := f.scheme.StatusError
	icon := ErrorIcon(f.NoColor)
	if o.Success {
		statusColor = f.scheme.StatusOK
		icon = SuccessIcon(f.NoColor)
	} else if o.StatusCode >= 300 && o.StatusCode < 400 {
		statusColor = f.scheme.StatusWarn
	}

	return fmt.Sprintf("%s Request %d: %s (%.2fs)\n",
		icon, o.Seq, statusColor.Sprint(o.StatusCode), o.Duration.Seconds())
}

// FormatReport renders the final aggregate report.
func (f *Formatter) FormatReport(report *stats.Report) string {
	var buf strings.Builder
	total := report.SuccessCount + report.FailureCount

	buf.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	buf.WriteString(f.scheme.Heading.Sprint("TEST RESULTS") + "\n")
	buf.WriteString(strings.Repeat("=", 60) + "\n")

	buf.WriteString(fmt.Sprintf("Total test duration:  %.2fs\n", report.TotalDuration.Seconds()))

	successRate := 0.0
	if total > 0 {
		successRate = float64(report.SuccessCount) / float64(total) * 100
	}
	buf.WriteString(fmt.Sprintf("Successful requests:  %s\n",
		f.scheme.Success.Sprintf("%d/%d (%.1f%%)", report.SuccessCount, total, successRate)))
	buf.WriteString(fmt.Sprintf("Failed requests:      %s\n",
		f.scheme.Error.Sprint(report.FailureCount)))

	if report.HasLatencyStats {
		buf.WriteString(fmt.Sprintf("Average latency:      %.2fs\n", report.AvgLatency.Seconds()))
		buf.WriteString(fmt.Sprintf("Requests per second:  %.2f\n", report.RequestsPerSec))
		buf.WriteString("\nResponse time percentiles:\n")
		buf.WriteString(fmt.Sprintf("  P50 (median): %.2fs\n", report.P50.Seconds()))
		buf.WriteString(fmt.Sprintf("  P95:          %.2fs\n", report.P95.Seconds()))
		buf.WriteString(fmt.Sprintf("  P99:          %.2fs\n", report.P99.Seconds()))
	} else {
		buf.WriteString("No successful requests; latency and throughput are undefined.\n")
	}

	if f.Verbose && total > 0 {
		d := report.Distribution
		buf.WriteString("\nLatency distribution (all requests):\n")
		buf.WriteString(fmt.Sprintf("  Min:    %s\n", d.Min.Round(time.Microsecond)))
		buf.WriteString(fmt.Sprintf("  Max:    %s\n", d.Max.Round(time.Microsecond)))
		buf.WriteString(fmt.Sprintf("  Mean:   %s\n", d.Mean.Round(time.Microsecond)))
		buf.WriteString(fmt.Sprintf("  StdDev: %s\n", d.StdDev.Round(time.Microsecond)))
	}

	buf.WriteString("\nStatus code breakdown:\n")
	for _, code := range report.Codes() {
		label := fmt.Sprintf("%d", code)
		if code == 0 {
			label = "Error"
		}
		buf.WriteString(fmt.Sprintf("  %s: %d\n", label, report.StatusCodes[code]))
	}

	if len(report.Failures) > 0 {
		buf.WriteString(fmt.Sprintf("\nSample errors (showing %d of %d):\n",
			len(report.Failures), report.FailureCount))
		for i, failure := range report.Failures {
			buf.WriteString(fmt.Sprintf("  %d. Request %d: %s\n", i+1, failure.Seq, failure.Reason))
		}
	}

	return buf.String()
}
