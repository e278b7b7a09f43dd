package stats

import (
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/volleyhttp/volley/internal/runner"
)

// FailureSampleSize bounds the number of failures quoted in a report.
const FailureSampleSize = 3

// hdr histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// Report is the aggregate result of a completed burst, immutable once
// produced.
type Report struct {
	// TotalDuration is the wall-clock span of the whole run.
	TotalDuration time.Duration `json:"totalDuration"`

	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`

	// HasLatencyStats is false when no request succeeded; the latency and
	// throughput fields below are then undefined, not genuine zeros.
	HasLatencyStats bool          `json:"hasLatencyStats"`
	AvgLatency      time.Duration `json:"avgLatency"`
	P50             time.Duration `json:"p50"`
	P95             time.Duration `json:"p95"`
	P99             time.Duration `json:"p99"`

	// RequestsPerSec is successes per second of total duration.
	RequestsPerSec float64 `json:"requestsPerSec"`

	// StatusCodes maps status code to count; code 0 is the transport-error
	// bucket. Codes() returns the keys in report order.
	StatusCodes map[int]int `json:"statusCodes"`

	// Failures is the first FailureSampleSize failed outcomes in sequence
	// order; FailureCount holds the true total.
	Failures []FailureSample `json:"failures,omitempty"`

	// Distribution covers ALL attempts, successes and failures alike,
	// measured with an HDR histogram.
	Distribution Distribution `json:"distribution"`
}

// FailureSample is one entry of the bounded failure sample.
type FailureSample struct {
	Seq    int    `json:"requestNum"`
	Reason string `json:"reason"`
}

// Distribution summarizes latency over every attempt.
type Distribution struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
}

// Codes returns the histogram keys in report order: numeric codes
// ascending, with the transport-error bucket (0) sorted last.
func (r *Report) Codes() []int {
	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i] == 0 {
			return false
		}
		if codes[j] == 0 {
			return true
		}
		return codes[i] < codes[j]
	})
	return codes
}

// Analyze reduces a completed outcome collection and the run's wall-clock
// duration into a Report. The input is not mutated; calling Analyze twice
// on the same input yields identical reports.
func Analyze(outcomes []runner.Outcome, total time.Duration) *Report {
	report := &Report{
		TotalDuration: total,
		StatusCodes:   make(map[int]int),
	}

	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)

	var successSecs []float64
	var sumSecs float64

	for _, o := range outcomes {
		report.StatusCodes[o.StatusCode]++
		recordClamped(hist, o.Duration)

		if o.Success {
			report.SuccessCount++
			secs := o.Duration.Seconds()
			successSecs = append(successSecs, secs)
			sumSecs += secs
		} else {
			report.FailureCount++
		}
	}

	if len(successSecs) > 0 {
		report.HasLatencyStats = true
		report.AvgLatency = secondsToDuration(sumSecs / float64(len(successSecs)))
		report.P50 = secondsToDuration(Percentile(successSecs, 50))
		report.P95 = secondsToDuration(Percentile(successSecs, 95))
		report.P99 = secondsToDuration(Percentile(successSecs, 99))

		if total > 0 {
			report.RequestsPerSec = float64(report.SuccessCount) / total.Seconds()
		}
	}

	if len(outcomes) > 0 {
		report.Distribution = Distribution{
			Min:    time.Duration(hist.Min()) * time.Microsecond,
			Max:    time.Duration(hist.Max()) * time.Microsecond,
			Mean:   time.Duration(hist.Mean()) * time.Microsecond,
			StdDev: time.Duration(hist.StdDev()) * time.Microsecond,
		}
	}

	report.Failures = sampleFailures(outcomes)

	return report
}

// sampleFailures returns the first FailureSampleSize failures in sequence
// order. Collection order is not guaranteed to match, so sort explicitly.
func sampleFailures(outcomes []runner.Outcome) []FailureSample {
	var failed []runner.Outcome
	for _, o := range outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}

	sort.Slice(failed, func(i, j int) bool {
		return failed[i].Seq < failed[j].Seq
	})

	if len(failed) > FailureSampleSize {
		failed = failed[:FailureSampleSize]
	}

	samples := make([]FailureSample, 0, len(failed))
	for _, o := range failed {
		reason := o.Err
		if reason == "" {
			// Non-2xx status with no transport fault.
			reason = "HTTP error"
		}
		samples = append(samples, FailureSample{Seq: o.Seq, Reason: reason})
	}

	return samples
}

// recordClamped records a duration in microseconds, clamped to the
// histogram's trackable range.
func recordClamped(hist *hdrhistogram.Histogram, d time.Duration) {
	micros := d.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}
	hist.RecordValue(micros)
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
