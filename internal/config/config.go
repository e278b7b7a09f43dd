package config

import "time"

// Defaults applied when a field is not supplied by flags, prompts, or a
// config file.
const (
	DefaultMethod   = "GET"
	DefaultRequests = 10
	DefaultTimeout  = 30
)

// RequestConfig describes one burst test: the request to send and how many
// copies of it to fire at once. Timeout is in whole seconds to match the
// flag and file formats.
type RequestConfig struct {
	URL      string            `json:"url" yaml:"url"`
	Method   string            `json:"method,omitempty" yaml:"method,omitempty"`
	Headers  map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body     interface{}       `json:"data,omitempty" yaml:"data,omitempty"`
	Requests int               `json:"requests,omitempty" yaml:"requests,omitempty"`
	Timeout  int               `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// NewRequestConfig returns a config pre-filled with defaults.
func NewRequestConfig() *RequestConfig {
	return &RequestConfig{
		Method:   DefaultMethod,
		Headers:  make(map[string]string),
		Requests: DefaultRequests,
		Timeout:  DefaultTimeout,
	}
}

// ApplyDefaults fills zero-valued fields after decoding from a file, where
// an omitted key leaves the Go zero value behind.
func (c *RequestConfig) ApplyDefaults() {
	if c.Method == "" {
		c.Method = DefaultMethod
	}
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	if c.Requests == 0 {
		c.Requests = DefaultRequests
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// TimeoutDuration returns the per-request timeout as a duration.
func (c *RequestConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// HasBody reports whether the configured method carries the body. A body
// supplied for GET or HEAD is ignored rather than rejected.
func (c *RequestConfig) HasBody() bool {
	if c.Body == nil {
		return false
	}
	switch c.Method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}
