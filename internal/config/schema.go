package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "todolist.schema.json"

// configSchema describes the keys accepted in todolist.toml.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "todolist configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "task_file": {"type": "string", "minLength": 1},
    "fsync": {"type": "boolean"},
    "color": {"enum": ["auto", "always", "never"]},
    "log_level": {"enum": ["debug", "info", "warn", "warning", "error"]},
    "log_format": {"enum": ["text", "json", "logfmt"]},
    "log_timestamps": {"type": "boolean"},
    "log_file": {"type": "string"}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
			schemaErr = fmt.Errorf("add config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidationError represents a config validation error with context.
type ValidationError struct {
	Path string // key path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validateRaw checks decoded TOML against the config schema.
func validateRaw(raw map[string]interface{}) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so values have the types the validator expects.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return errors.Join(errs...)
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: pointerToKey(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func pointerToKey(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
