// Package openapi adapts kin-openapi JSON schemas to the formkit schema
// Parser contract, so forms can be validated against the same documents
// that describe the API they submit to.
package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/vango-dev/formkit/pkg/schema"
)

// Parser validates form values against an OpenAPI 3 schema.
type Parser struct {
	schema *openapi3.Schema
}

// Ensure the contract is satisfied.
var _ schema.Parser = (*Parser)(nil)

// New wraps an already-built openapi3 schema.
func New(s *openapi3.Schema) *Parser {
	return &Parser{schema: s}
}

// Load parses a standalone JSON schema document, e.g. the requestBody
// schema extracted from an OpenAPI spec.
func Load(data []byte) (*Parser, error) {
	s := &openapi3.Schema{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("openapi: parse schema: %w", err)
	}
	return &Parser{schema: s}, nil
}

// Parse implements schema.Parser. The engine is asked for every violation
// (MultiErrors) and each one is mapped to a Violation whose path is the
// schema error's JSON pointer. Engine output order is preserved, which is
// what gives first-violation-per-field precedence downstream.
func (p *Parser) Parse(values map[string]any) error {
	if p == nil || p.schema == nil {
		return nil
	}

	err := p.schema.VisitJSON(values, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var vs schema.Violations
	collectViolations(&vs, err)
	if len(vs.List) == 0 {
		// The engine failed without a structured schema error.
		vs.Add(nil, err.Error())
	}
	return &vs
}

// collectViolations flattens kin-openapi's error values into the ordered
// violation list. MultiError nests arbitrarily, so recurse.
func collectViolations(vs *schema.Violations, err error) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, sub := range e {
			collectViolations(vs, sub)
		}
	case *openapi3.SchemaError:
		vs.Add(e.JSONPointer(), schemaErrorMessage(e))
	default:
		if err != nil {
			vs.Add(nil, err.Error())
		}
	}
}

// schemaErrorMessage prefers the engine's bare reason over the full
// pointer-prefixed rendering.
func schemaErrorMessage(e *openapi3.SchemaError) string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.Error()
}
