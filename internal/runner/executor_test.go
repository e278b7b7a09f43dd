package runner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	volleyhttp "github.com/volleyhttp/volley/internal/http"
)

func newTestExecutor(t *testing.T, url string, timeout time.Duration) *Executor {
	t.Helper()

	client := volleyhttp.NewClient(
		volleyhttp.WithTimeout(timeout),
		volleyhttp.WithConcurrency(1),
	)
	request, err := volleyhttp.NewRequest("GET", url, nil, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return NewExecutor(client, request)
}

func TestExecutor_SuccessfulJSONResponse(t *testing.T) {
	body := `{"message":"success"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer server.Close()

	outcome := newTestExecutor(t, server.URL, 5*time.Second).Do(context.Background(), 1)

	if outcome.Seq != 1 {
		t.Errorf("Seq = %d, want 1", outcome.Seq)
	}
	if outcome.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", outcome.StatusCode)
	}
	if !outcome.Success {
		t.Error("Success = false, want true")
	}
	if outcome.ResponseSize != len(body) {
		t.Errorf("ResponseSize = %d, want %d", outcome.ResponseSize, len(body))
	}
	if outcome.Err != "" {
		t.Errorf("Err = %q, want empty", outcome.Err)
	}
	if outcome.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", outcome.Duration)
	}
}

func TestExecutor_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	outcome := newTestExecutor(t, server.URL, 5*time.Second).Do(context.Background(), 3)

	if outcome.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", outcome.StatusCode)
	}
	if outcome.Success {
		t.Error("Success = true for a 500, want false")
	}
	// A status was obtained, so this is not a transport fault.
	if outcome.Err != "" {
		t.Errorf("Err = %q, want empty for an HTTP-level failure", outcome.Err)
	}
	if outcome.TransportError() {
		t.Error("TransportError() = true, want false")
	}
}

func TestExecutor_MalformedJSONFallsBackToContentLength(t *testing.T) {
	body := "not json at all"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	outcome := newTestExecutor(t, server.URL, 5*time.Second).Do(context.Background(), 1)

	// The decode fault is recovered: the status still classifies the
	// outcome, only the size falls back to the header-derived estimate.
	if !outcome.Success {
		t.Error("Success = false, want true despite decode failure")
	}
	want := len(fmt.Sprintf("Response size: %d bytes", len(body)))
	if outcome.ResponseSize != want {
		t.Errorf("ResponseSize = %d, want placeholder length %d", outcome.ResponseSize, want)
	}
}

func TestExecutor_PlainTextResponse(t *testing.T) {
	body := "hello, world"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(body))
	}))
	defer server.Close()

	outcome := newTestExecutor(t, server.URL, 5*time.Second).Do(context.Background(), 1)

	if outcome.ResponseSize != len(body) {
		t.Errorf("ResponseSize = %d, want %d", outcome.ResponseSize, len(body))
	}
}

func TestExecutor_ConnectionRefused(t *testing.T) {
	// Nothing listens here; the port is reserved and never assigned.
	outcome := newTestExecutor(t, "http://127.0.0.1:1/", 2*time.Second).Do(context.Background(), 7)

	if outcome.Seq != 7 {
		t.Errorf("Seq = %d, want 7", outcome.Seq)
	}
	if !outcome.TransportError() {
		t.Error("TransportError() = false, want true")
	}
	if outcome.Success {
		t.Error("Success = true, want false")
	}
	if outcome.ResponseSize != 0 {
		t.Errorf("ResponseSize = %d, want 0", outcome.ResponseSize)
	}
	if outcome.Err == "" {
		t.Error("Err empty, want a fault description")
	}
}

func TestExecutor_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	outcome := newTestExecutor(t, server.URL, 50*time.Millisecond).Do(context.Background(), 1)

	if !outcome.TransportError() {
		t.Fatal("TransportError() = false, want true on timeout")
	}
	if !strings.Contains(outcome.Err, "timed out") {
		t.Errorf("Err = %q, want a timeout description", outcome.Err)
	}
	if outcome.Duration >= 500*time.Millisecond {
		t.Errorf("Duration = %v, want bounded by the 50ms timeout", outcome.Duration)
	}
}

func TestExecutor_BodyOnlyForBodyBearingMethods(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := volleyhttp.NewClient(volleyhttp.WithTimeout(5 * time.Second))
	request, err := volleyhttp.NewRequest("POST", server.URL, map[string]string{"X-Test": "1"},
		map[string]interface{}{"name": "John"})
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	outcome := NewExecutor(client, request).Do(context.Background(), 1)

	if outcome.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", outcome.StatusCode)
	}
	if gotBody != `{"name":"John"}` {
		t.Errorf("server saw body %q, want %q", gotBody, `{"name":"John"}`)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
}
