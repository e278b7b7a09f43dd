// Package runner dispatches a burst of concurrent HTTP requests and
// collects one outcome per request.
package runner

import (
	"time"
)

// Outcome is the terminal record of one request attempt. It is created
// exactly once, by the executor that ran the attempt, and never mutated
// afterward.
type Outcome struct {
	// Seq is the request's sequence number, assigned before dispatch.
	// After a run of N requests the set of Seq values is exactly {1..N}.
	Seq int `json:"requestNum"`

	// StatusCode is the HTTP status, or 0 when the attempt failed before
	// a status was obtained (timeout, connection refusal, DNS failure).
	StatusCode int `json:"statusCode"`

	// Duration is the wall-clock time from request start to response
	// receipt or failure.
	Duration time.Duration `json:"duration"`

	// Success is true iff a status code was obtained and it is in [200,300).
	Success bool `json:"success"`

	// ResponseSize is the length of the decoded response body, 0 on
	// failure or when the body is absent.
	ResponseSize int `json:"responseSize"`

	// Err describes the transport fault, empty when a status was obtained.
	Err string `json:"error,omitempty"`
}

// TransportError reports whether the attempt failed before an HTTP status
// was obtained.
func (o Outcome) TransportError() bool {
	return o.StatusCode == 0
}
