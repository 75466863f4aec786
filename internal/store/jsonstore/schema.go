package jsonstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/Makepad-fr/todolist/todos.schema.json"

// Both the current object layout and the legacy bare array are accepted.
const schemaText = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "todo": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "title": {"type": "string"},
        "done": {"type": "boolean"}
      }
    },
    "todos": {
      "type": "array",
      "items": {"$ref": "#/$defs/todo"}
    }
  },
  "oneOf": [
    {
      "type": "object",
      "required": ["title", "todos"],
      "properties": {
        "title": {"type": "string"},
        "todos": {"$ref": "#/$defs/todos"}
      }
    },
    {"$ref": "#/$defs/todos"}
  ]
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaText)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// validate checks a decoded JSON document against the store schema.
func validate(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			return fmt.Errorf("%w: %s: %s", ErrInvalidFile, pointerPath(leaf.InstanceLocation), leaf.Message)
		}
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return nil
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func pointerPath(ptr string) string {
	if ptr == "" {
		return "$"
	}
	return "$" + strings.ReplaceAll(ptr, "/", ".")
}
