package document

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://selection-document.json"

const datePattern = `^([0-9]{4}-[0-9]{2}-[0-9]{2})?$`

// Schema is the JSON schema every selection document must satisfy.
// Session keys and policy names are checked after decoding because they
// depend on the configured timeline.
var Schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":        "string",
			"description": "Document format version, e.g. v1",
		},
		"policy": map[string]any{
			"type":        "string",
			"description": "Evaluation policy name",
		},
		"current": map[string]any{
			"type":        "string",
			"description": "Session key of the learner's current series",
		},
		"mode": map[string]any{
			"type": "string",
			"enum": []any{string(ModeMatrix), string(ModeDated)},
		},
		"sessions": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"component": map[string]any{
							"type": "string",
							"enum": []any{"internal1", "internal2", "external"},
						},
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"initial", "resit"},
						},
					},
					"required":             []any{"component", "kind"},
					"additionalProperties": false,
				},
			},
		},
		"components": map[string]any{
			"type":          "object",
			"propertyNames": map[string]any{"enum": []any{"internal1", "internal2", "external"}},
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"completed":  map[string]any{"type": "boolean"},
					"date":       map[string]any{"type": "string", "pattern": datePattern},
					"resit":      map[string]any{"type": "boolean"},
					"resit_date": map[string]any{"type": "string", "pattern": datePattern},
				},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"version"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles Schema once and caches the result.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the
		// Go literal through encoding/json.
		raw, err := json.Marshal(Schema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateSchema checks a decoded document tree against Schema.
func validateSchema(tree any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := s.Validate(tree); err != nil {
		return &ValidationError{Message: "schema validation failed", Err: err}
	}
	return nil
}
