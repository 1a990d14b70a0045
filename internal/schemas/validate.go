// Package schemas checks questionnaire catalog documents against an embedded JSON Schema.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// CatalogSchema is the JSON Schema every catalog document must satisfy.
//
//go:embed catalog.schema.json
var CatalogSchema []byte

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *gojsonschema.Schema
	catalogSchemaErr  error
)

// FieldError is one schema violation at a document path such as "questions.3.severity"
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation in a document
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	lines := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		lines = append(lines, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%d schema violation(s): %s", len(ve.Errors), strings.Join(lines, "; "))
}

// SchemaLoadError means the schema itself could not be compiled
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateCatalog checks a JSON catalog document against CatalogSchema. The schema
// is compiled on first use and shared afterwards.
func ValidateCatalog(document []byte) error {
	catalogSchemaOnce.Do(func() {
		catalogSchema, catalogSchemaErr = compile("catalog.schema.json", CatalogSchema)
	})
	if catalogSchemaErr != nil {
		return catalogSchemaErr
	}
	return check(catalogSchema, document)
}

// ValidateBytes checks a JSON document against an arbitrary schema.
func ValidateBytes(schema, document []byte) error {
	s, err := compile("(inline)", schema)
	if err != nil {
		return err
	}
	return check(s, document)
}

func compile(name string, schema []byte) (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}
	return s, nil
}

func check(s *gojsonschema.Schema, document []byte) error {
	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
