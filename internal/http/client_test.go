package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient()
	if got := client.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s default", got)
	}
}

func TestWithTimeout(t *testing.T) {
	client := NewClient(WithTimeout(5 * time.Second))
	if got := client.Timeout(); got != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", got)
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("underlying timeout = %v, want 5s", client.httpClient.Timeout)
	}
}

func TestWithConcurrency_SizesPool(t *testing.T) {
	client := NewClient(WithConcurrency(100))

	transport, ok := client.httpClient.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, want *http.Transport", client.httpClient.Transport)
	}

	// The pool must exceed the burst size so the transport never queues
	// requests behind each other.
	if transport.MaxConnsPerHost <= 100 {
		t.Errorf("MaxConnsPerHost = %d, want > 100", transport.MaxConnsPerHost)
	}
	if transport.MaxIdleConnsPerHost != transport.MaxConnsPerHost {
		t.Errorf("MaxIdleConnsPerHost = %d, want %d", transport.MaxIdleConnsPerHost, transport.MaxConnsPerHost)
	}
}

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(2 * time.Second))
	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("StatusCode = %d, want 204", resp.StatusCode)
	}
}

func TestClient_DoHonorsContext(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(WithTimeout(10 * time.Second))
	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := client.Do(ctx, req); err == nil {
		t.Error("Do returned nil error after context cancellation")
	}
}
