package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	volleyhttp "github.com/volleyhttp/volley/internal/http"
)

// Executor performs single request attempts against a shared client and a
// shared request template. It is safe for concurrent use: every attempt
// builds its own http.Request and touches no shared mutable state.
type Executor struct {
	client  *volleyhttp.Client
	request *volleyhttp.Request
}

// NewExecutor creates an executor over a shared client and request template.
func NewExecutor(client *volleyhttp.Client, request *volleyhttp.Request) *Executor {
	return &Executor{
		client:  client,
		request: request,
	}
}

// Do performs one attempt and returns exactly one Outcome. It has no error
// return: every failure mode (timeout, connection refusal, DNS failure,
// malformed response) is converted into a failed Outcome.
func (e *Executor) Do(ctx context.Context, seq int) Outcome {
	start := time.Now()

	req, err := e.request.Build()
	if err != nil {
		return Outcome{
			Seq:      seq,
			Duration: time.Since(start),
			Err:      fmt.Sprintf("failed to build request: %v", err),
		}
	}

	resp, err := e.client.Do(ctx, req)
	if err != nil {
		return Outcome{
			Seq:      seq,
			Duration: time.Since(start),
			Err:      describeFault(err, e.client.Timeout()),
		}
	}

	// End of the measured window: the response has been received.
	duration := time.Since(start)
	defer resp.Body.Close()

	outcome := Outcome{
		Seq:        seq,
		StatusCode: resp.StatusCode,
		Duration:   duration,
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
	}

	body, readErr := io.ReadAll(resp.Body)
	contentType := resp.Header.Get("Content-Type")

	switch {
	case readErr != nil:
		// The status stands; only the size falls back to the header.
		outcome.ResponseSize = len(contentLengthPlaceholder(resp.Header.Get("Content-Length")))
	case strings.Contains(contentType, "application/json"):
		if gjson.ValidBytes(body) {
			outcome.ResponseSize = len(gjson.ParseBytes(body).String())
		} else {
			outcome.ResponseSize = len(contentLengthPlaceholder(resp.Header.Get("Content-Length")))
		}
	default:
		outcome.ResponseSize = len(body)
	}

	return outcome
}

// contentLengthPlaceholder is the fallback representation used when the
// body cannot be decoded as its declared content type.
func contentLengthPlaceholder(contentLength string) string {
	if contentLength == "" {
		contentLength = "unknown"
	}
	return fmt.Sprintf("Response size: %s bytes", contentLength)
}

// describeFault converts a transport error into a human-readable
// description for the outcome record.
func describeFault(err error, timeout time.Duration) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return fmt.Sprintf("request timed out after %s", timeout)
		}
		err = urlErr.Err
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return err.Error()
}
