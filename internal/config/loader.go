package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads a RequestConfig from a JSON or YAML file. The format is
// chosen by extension (.yaml/.yml for YAML, anything else is JSON). JSON
// files are additionally validated against the embedded schema so that a
// typo'd field name fails loudly instead of silently falling back to a
// default.
func LoadConfig(path string) (*RequestConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := NewRequestConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	default:
		if err := ValidateSchema(data); err != nil {
			return nil, fmt.Errorf("config file validation failed: %w", err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	config.ApplyDefaults()
	return config, nil
}

// ParseHeaders parses a JSON object string (e.g. from --headers) into a
// header map.
func ParseHeaders(raw string) (map[string]string, error) {
	headers := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return headers, nil
	}
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		return nil, fmt.Errorf("invalid JSON format for headers: %w", err)
	}
	return headers, nil
}

// ParseBody parses a JSON string (e.g. from --data) into an arbitrary JSON
// value. An empty string yields nil (no body).
func ParseBody(raw string) (interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var body interface{}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, fmt.Errorf("invalid JSON format for data: %w", err)
	}
	return body, nil
}
