package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validMethods are the HTTP methods a burst test may use.
var validMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// Validate checks a RequestConfig regardless of how it was assembled.
// All three configuration sources (flags, prompts, config file) funnel
// through this before any request is dispatched. It also normalizes the
// method to upper case.
func Validate(c *RequestConfig) []ValidationError {
	var errors []ValidationError

	if c.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "url",
			Message: "url is required",
		})
	} else {
		parsed, err := url.Parse(c.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "url",
				Message: fmt.Sprintf("invalid url: %s", c.URL),
			})
		}
	}

	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	if !stringInSlice(c.Method, validMethods) {
		errors = append(errors, ValidationError{
			Field:   "method",
			Message: fmt.Sprintf("invalid method: %s", c.Method),
		})
	}

	if c.Requests < 1 {
		errors = append(errors, ValidationError{
			Field:   "requests",
			Message: "requests must be at least 1",
		})
	}

	if c.Timeout < 1 {
		errors = append(errors, ValidationError{
			Field:   "timeout",
			Message: "timeout must be at least 1 second",
		})
	}

	return errors
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
