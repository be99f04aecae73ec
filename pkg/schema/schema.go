package schema

import (
	"errors"
	"strings"
)

// Violation is a single schema violation located by its field path.
// Path is empty for form-level violations that are not attributable to a
// specific field.
type Violation struct {
	Path    []string
	Message string
}

// Field returns the leading path segment, or "" if the violation has no
// resolvable field.
func (v Violation) Field() string {
	if len(v.Path) == 0 {
		return ""
	}
	return v.Path[0]
}

// Violations is the error type a Parser reports on failure. The list order
// is significant: it determines which message wins when a field has more
// than one violation.
type Violations struct {
	List []Violation
}

// Error implements the error interface.
func (v *Violations) Error() string {
	if v == nil || len(v.List) == 0 {
		return "schema: invalid value"
	}
	var b strings.Builder
	b.WriteString("schema: ")
	for i, viol := range v.List {
		if i > 0 {
			b.WriteString("; ")
		}
		if f := viol.Field(); f != "" {
			b.WriteString(f)
			b.WriteString(": ")
		}
		b.WriteString(viol.Message)
	}
	return b.String()
}

// Add appends a violation for the given path.
func (v *Violations) Add(path []string, message string) {
	v.List = append(v.List, Violation{Path: path, Message: message})
}

// Parser is the external schema collaborator: it checks a complete values
// object and returns nil on success or a *Violations error on failure.
// Implementations must not panic on malformed input.
type Parser interface {
	Parse(values map[string]any) error
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(values map[string]any) error

func (f ParserFunc) Parse(values map[string]any) error {
	return f(values)
}

// Result is the uniform validation outcome consumed by the form store.
type Result struct {
	// Valid reports whether the values passed the schema.
	Valid bool

	// FieldErrors maps each failing field to its first violation message.
	FieldErrors map[string]string

	// Message carries the first violation that had no resolvable field
	// path. The form store ignores it for per-field errors; callers that
	// want a form-level error can surface it.
	Message string
}

// Validate runs the parser against the full values object and folds the
// outcome into a per-field first-violation mapping. A nil parser always
// reports valid. Violation list order decides precedence: later violations
// for an already-recorded field are ignored.
func Validate(p Parser, values map[string]any) Result {
	if p == nil {
		return Result{Valid: true}
	}

	err := p.Parse(values)
	if err == nil {
		return Result{Valid: true}
	}

	result := Result{Valid: false, FieldErrors: make(map[string]string)}

	var vs *Violations
	if !errors.As(err, &vs) {
		// A parser that fails with a plain error has no field to pin the
		// message on; treat it as a form-level violation.
		result.Message = err.Error()
		return result
	}

	for _, viol := range vs.List {
		field := viol.Field()
		if field == "" {
			if result.Message == "" {
				result.Message = viol.Message
			}
			continue
		}
		if _, seen := result.FieldErrors[field]; seen {
			continue
		}
		result.FieldErrors[field] = viol.Message
	}

	return result
}
