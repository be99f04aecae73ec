package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Rule checks a single field value. Returns "" when the value passes, or
// the violation message when it does not.
type Rule interface {
	Check(value any) string
}

// RuleFunc is a function that implements Rule.
type RuleFunc func(value any) string

func (f RuleFunc) Check(value any) string {
	return f(value)
}

// FieldRules binds an ordered rule list to a field name.
type FieldRules struct {
	Name  string
	Rules []Rule
}

// Field declares the rules for one field. Rule order is the order
// violations are reported in.
func Field(name string, rules ...Rule) FieldRules {
	return FieldRules{Name: name, Rules: rules}
}

// ObjectSchema is a Parser built from per-field rules. Field declaration
// order fixes the violation order across fields.
type ObjectSchema struct {
	fields []FieldRules
}

// Object builds a rule-based schema for a flat values object.
func Object(fields ...FieldRules) *ObjectSchema {
	return &ObjectSchema{fields: fields}
}

// Parse implements Parser. It checks every declared field against every one
// of its rules and reports all violations in declaration order. Fields
// absent from the values object are checked against a nil value, so
// Required still fires for them.
func (s *ObjectSchema) Parse(values map[string]any) error {
	var vs Violations
	for _, f := range s.fields {
		value := values[f.Name]
		for _, rule := range f.Rules {
			if msg := rule.Check(value); msg != "" {
				vs.Add([]string{f.Name}, msg)
			}
		}
	}
	if len(vs.List) > 0 {
		return &vs
	}
	return nil
}

// Fields returns the declared field names in order.
func (s *ObjectSchema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// ----------------------------------------------------------------------------
// String Rules
// ----------------------------------------------------------------------------

// Required checks that the value is non-empty.
func Required(msg string) Rule {
	if msg == "" {
		msg = "This field is required"
	}
	return RuleFunc(func(value any) string {
		if isEmpty(value) {
			return msg
		}
		return ""
	})
}

// MinLength checks that a string has at least n characters.
func MinLength(n int, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return RuleFunc(func(value any) string {
		s := toString(value)
		if s == "" {
			return "" // Let Required handle empty values
		}
		if len([]rune(s)) < n {
			return msg
		}
		return ""
	})
}

// MaxLength checks that a string has at most n characters.
func MaxLength(n int, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return RuleFunc(func(value any) string {
		if len([]rune(toString(value))) > n {
			return msg
		}
		return ""
	})
}

// Pattern checks that a string matches the given regular expression.
// The pattern is compiled with regexp.MustCompile, so it panics on a bad
// expression; use PatternRule when the pattern comes from runtime input.
func Pattern(pattern string, msg string) Rule {
	return matchRule(regexp.MustCompile(pattern), msg)
}

// PatternRule is Pattern for expressions that arrive at runtime, such as
// rule documents. A bad expression is reported as an error, not a panic.
func PatternRule(pattern string, msg string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return matchRule(re, msg), nil
}

func matchRule(re *regexp.Regexp, msg string) Rule {
	if msg == "" {
		msg = "Invalid format"
	}
	return RuleFunc(func(value any) string {
		s := toString(value)
		if s == "" {
			return ""
		}
		if !re.MatchString(s) {
			return msg
		}
		return ""
	})
}

// emailPattern is a basic sanity check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email checks that the value is a plausible email address.
func Email(msg string) Rule {
	if msg == "" {
		msg = "Invalid email address"
	}
	return RuleFunc(func(value any) string {
		s := toString(value)
		if s == "" {
			return ""
		}
		if !emailPattern.MatchString(s) {
			return msg
		}
		return ""
	})
}

// URL checks that the value is an absolute URL.
func URL(msg string) Rule {
	if msg == "" {
		msg = "Invalid URL"
	}
	return RuleFunc(func(value any) string {
		s := toString(value)
		if s == "" {
			return ""
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return msg
		}
		return ""
	})
}

// Alpha checks that the value contains only letters.
func Alpha(msg string) Rule {
	if msg == "" {
		msg = "Must contain only letters"
	}
	return RuleFunc(func(value any) string {
		for _, r := range toString(value) {
			if !unicode.IsLetter(r) {
				return msg
			}
		}
		return ""
	})
}

// Numeric checks that the value contains only digits.
func Numeric(msg string) Rule {
	if msg == "" {
		msg = "Must contain only numbers"
	}
	return RuleFunc(func(value any) string {
		for _, r := range toString(value) {
			if !unicode.IsDigit(r) {
				return msg
			}
		}
		return ""
	})
}

// Contains checks that a string contains the given substring.
func Contains(substr string, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must contain %q", substr)
	}
	return RuleFunc(func(value any) string {
		s := toString(value)
		if s == "" {
			return ""
		}
		if !strings.Contains(s, substr) {
			return msg
		}
		return ""
	})
}

// OneOf checks that the value equals one of the allowed options.
func OneOf(options []string, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must be one of: %s", strings.Join(options, ", "))
	}
	return RuleFunc(func(value any) string {
		s := toString(value)
		if s == "" {
			return ""
		}
		for _, opt := range options {
			if s == opt {
				return ""
			}
		}
		return msg
	})
}

// ----------------------------------------------------------------------------
// Numeric Rules
// ----------------------------------------------------------------------------

// Min checks that a numeric value is >= n.
func Min(n float64, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %v", n)
	}
	return RuleFunc(func(value any) string {
		if isEmpty(value) {
			return ""
		}
		if toFloat64(value) < n {
			return msg
		}
		return ""
	})
}

// Max checks that a numeric value is <= n.
func Max(n float64, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %v", n)
	}
	return RuleFunc(func(value any) string {
		if isEmpty(value) {
			return ""
		}
		if toFloat64(value) > n {
			return msg
		}
		return ""
	})
}

// Accepted checks that a boolean value is true. Used for terms-of-service
// style checkboxes.
func Accepted(msg string) Rule {
	if msg == "" {
		msg = "Must be accepted"
	}
	return RuleFunc(func(value any) string {
		if b, ok := value.(bool); ok && b {
			return ""
		}
		return msg
	})
}

// Custom adapts a plain check function to a Rule.
func Custom(fn func(value any) string) Rule {
	return RuleFunc(fn)
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// isEmpty checks if a value is considered empty.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return len(v) == 0
	default:
		// Zero numbers and false are not empty.
		return false
	}
}

// toString converts a value to a string.
func toString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat64 converts a value to float64.
func toFloat64(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
