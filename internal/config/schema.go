package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the JSON Schema for burst test config files. Unknown
// top-level fields are rejected to catch typos like "request" for
// "requests".
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "url": { "type": "string", "minLength": 1 },
    "method": { "type": "string" },
    "headers": {
      "type": "object",
      "additionalProperties": { "type": "string" }
    },
    "data": {},
    "requests": { "type": "integer", "minimum": 1 },
    "timeout": { "type": "integer", "minimum": 1 }
  },
  "required": ["url"],
  "additionalProperties": false
}`

// compiledSchema is compiled once at startup; the schema is a constant, so
// a compile failure is a programming error.
var compiledSchema = jsonschema.MustCompileString("config.json", configSchema)

// ValidateSchema validates raw JSON config data against the embedded
// schema before it is decoded into a RequestConfig.
func ValidateSchema(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := compiledSchema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("%s", formatSchemaError(ve))
		}
		return err
	}

	return nil
}

// formatSchemaError flattens a jsonschema validation error into a single
// readable line per cause.
func formatSchemaError(ve *jsonschema.ValidationError) string {
	leaves := ve.BasicOutput().Errors

	var msgs []string
	for _, e := range leaves {
		if e.Error == "" || strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.Error))
	}

	if len(msgs) == 0 {
		return ve.Error()
	}
	return strings.Join(msgs, "; ")
}
