// Package schema defines the validation collaborator contract used by
// formkit forms and adapts schema engines to a uniform per-field result.
//
// # Contract
//
// A Parser checks a full values object and reports either success (nil) or
// a *Violations error carrying an ordered list of {Path, Message} entries:
//
//	err := parser.Parse(values)
//	var vs *schema.Violations
//	if errors.As(err, &vs) { ... }
//
// Validation failures are always data, never panics. The Validate adapter
// folds a Parser's violation list into one message per field, keeping the
// first violation encountered for each leading path segment:
//
//	result := schema.Validate(parser, values)
//	if !result.Valid {
//	    msg := result.FieldErrors["email"]
//	}
//
// # Built-in rule schemas
//
// Object builds a Parser from composable per-field rules, declared in the
// order violations should be reported:
//
//	s := schema.Object(
//	    schema.Field("email", schema.Required(""), schema.Email("")),
//	    schema.Field("age", schema.Min(18, "")),
//	)
//
// Rule schemas can also be loaded from YAML documents via LoadYAML, and
// the openapi subpackage adapts kin-openapi JSON schemas to the same
// Parser contract.
package schema
