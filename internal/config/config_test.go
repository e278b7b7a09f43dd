package config

import (
	"testing"
	"time"
)

func TestTimeoutDuration(t *testing.T) {
	cfg := &RequestConfig{Timeout: 15}
	if got := cfg.TimeoutDuration(); got != 15*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 15s", got)
	}
}

func TestHasBody(t *testing.T) {
	tests := []struct {
		method string
		body   interface{}
		want   bool
	}{
		{"POST", map[string]interface{}{"a": 1}, true},
		{"PUT", "payload", true},
		{"PATCH", 1, true},
		{"DELETE", map[string]interface{}{}, true},
		{"GET", map[string]interface{}{"a": 1}, false},
		{"HEAD", "x", false},
		{"POST", nil, false},
	}
	for _, tt := range tests {
		cfg := &RequestConfig{Method: tt.method, Body: tt.body}
		if got := cfg.HasBody(); got != tt.want {
			t.Errorf("HasBody() with %s/%v = %v, want %v", tt.method, tt.body, got, tt.want)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &RequestConfig{URL: "https://example.com"}
	cfg.ApplyDefaults()

	if cfg.Method != DefaultMethod || cfg.Requests != DefaultRequests || cfg.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Headers == nil {
		t.Error("Headers = nil, want empty map")
	}

	// Explicit values survive.
	cfg = &RequestConfig{URL: "https://example.com", Method: "POST", Requests: 3, Timeout: 7}
	cfg.ApplyDefaults()
	if cfg.Method != "POST" || cfg.Requests != 3 || cfg.Timeout != 7 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}
