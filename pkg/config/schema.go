package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed seed.schema.json
var seedSchemaJSON []byte

const seedSchemaURL = "seed.schema.json"

var (
	seedSchemaOnce sync.Once
	seedSchema     *jsonschema.Schema
	seedSchemaErr  error
)

// SeedSchema returns the raw JSON Schema seed files are validated against.
func SeedSchema() []byte {
	return bytes.Clone(seedSchemaJSON)
}

func compiledSeedSchema() (*jsonschema.Schema, error) {
	seedSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(seedSchemaURL, bytes.NewReader(seedSchemaJSON)); err != nil {
			seedSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		seedSchema, seedSchemaErr = compiler.Compile(seedSchemaURL)
	})
	return seedSchema, seedSchemaErr
}

// SchemaError lists the schema violations found in a seed document.
type SchemaError struct {
	Violations []SeedValidationError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "seed schema: " + strings.Join(msgs, "; ")
}

// ValidateSeedDocument validates a decoded JSON document against the seed
// schema. It returns a *SchemaError describing each violation.
func ValidateSeedDocument(doc any) error {
	schema, err := compiledSeedSchema()
	if err != nil {
		return err
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &SchemaError{}
	collectViolations(verr, out)
	return out
}

// collectViolations flattens the leaf causes of a validation error.
func collectViolations(err *jsonschema.ValidationError, out *SchemaError) {
	if len(err.Causes) == 0 {
		out.Violations = append(out.Violations, SeedValidationError{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, out)
	}
}

// pointerToPath converts a JSON Pointer ("/articles/0/slug") to dot notation.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
