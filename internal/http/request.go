package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Request is the immutable template for every request in a burst: method,
// URL, headers, and an optional JSON body. Build stamps out a fresh
// http.Request per attempt so concurrent executors never share state.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string

	// bodyBytes is the pre-marshaled JSON body, nil when no body is sent.
	// Marshaling once up front means a malformed body value is a
	// configuration error, not a per-request fault.
	bodyBytes []byte
}

// NewRequest creates a request template. The body is marshaled to JSON
// immediately; a nil body means none is attached.
func NewRequest(method, url string, headers map[string]string, body interface{}) (*Request, error) {
	r := &Request{
		Method:  method,
		URL:     url,
		Headers: headers,
	}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		r.bodyBytes = data
	}

	return r, nil
}

// HasBody reports whether a JSON body will be attached.
func (r *Request) HasBody() bool {
	return r.bodyBytes != nil
}

// Build constructs a fresh http.Request from the template.
func (r *Request) Build() (*http.Request, error) {
	var req *http.Request
	var err error

	if r.bodyBytes != nil {
		req, err = http.NewRequest(r.Method, r.URL, bytes.NewReader(r.bodyBytes))
	} else {
		req, err = http.NewRequest(r.Method, r.URL, nil)
	}
	if err != nil {
		return nil, err
	}

	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	// Default the content type for JSON bodies unless the caller set one.
	if r.bodyBytes != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
