package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/volleyhttp/volley/internal/config"
	"github.com/volleyhttp/volley/internal/runner"
	"github.com/volleyhttp/volley/internal/stats"
)

// DefaultReportDir is where report files land unless overridden.
const DefaultReportDir = "stress_test_results"

// WriteReport writes the detailed plain-text report to a timestamped file
// under dir and returns the path written.
func WriteReport(dir string, cfg *config.RequestConfig, outcomes []runner.Outcome, report *stats.Report) (string, error) {
	if dir == "" {
		dir = DefaultReportDir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("test_%s.txt", timestamp))

	content := renderReportFile(cfg, outcomes, report)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// renderReportFile produces the plain-text report body: configuration,
// totals, then one detail line per request in sequence order.
func renderReportFile(cfg *config.RequestConfig, outcomes []runner.Outcome, report *stats.Report) string {
	var buf strings.Builder

	buf.WriteString("API Stress Test Results\n")
	buf.WriteString(strings.Repeat("=", 50) + "\n\n")

	buf.WriteString("Configuration:\n")
	buf.WriteString(fmt.Sprintf("  URL: %s\n", cfg.URL))
	buf.WriteString(fmt.Sprintf("  Method: %s\n", cfg.Method))
	buf.WriteString(fmt.Sprintf("  Concurrent Requests: %d\n", cfg.Requests))
	buf.WriteString(fmt.Sprintf("  Timeout: %ds\n", cfg.Timeout))
	buf.WriteString(fmt.Sprintf("  Headers: %s\n", jsonOrNone(cfg.Headers, len(cfg.Headers) > 0)))
	buf.WriteString(fmt.Sprintf("  Data: %s\n\n", jsonOrNone(cfg.Body, cfg.Body != nil)))

	buf.WriteString(fmt.Sprintf("Test Duration: %.2f seconds\n\n", report.TotalDuration.Seconds()))

	buf.WriteString("Detailed Results:\n")
	buf.WriteString(strings.Repeat("-", 30) + "\n")

	for _, o := range outcomes {
		status := "ERR"
		if !o.TransportError() {
			status = fmt.Sprintf("%d", o.StatusCode)
		}
		buf.WriteString(fmt.Sprintf("Request %2d: Status=%-3s, Duration=%6.2fs, Success=%t\n",
			o.Seq, status, o.Duration.Seconds(), o.Success))
		if o.Err != "" {
			buf.WriteString(fmt.Sprintf("              Error: %s\n", o.Err))
		}
	}

	return buf.String()
}

// jsonOrNone renders v as indented JSON, or "None" when absent.
func jsonOrNone(v interface{}, present bool) string {
	if !present {
		return "None"
	}
	data, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
