package form

import (
	"fmt"
	"strconv"
	"strings"
)

// InputKind tells HandleChange how to coerce a raw input value before it
// is written into the form.
type InputKind uint8

const (
	// InputText passes the raw value through as a string.
	InputText InputKind = iota

	// InputNumber parses the raw value as a number. A cleared input ("")
	// is preserved as the empty string, not coerced to zero.
	InputNumber

	// InputCheckbox coerces the raw value to the boolean checked state.
	InputCheckbox

	// InputOther passes the raw value through unchanged.
	InputOther
)

// String returns the input kind's wire name.
func (k InputKind) String() string {
	switch k {
	case InputText:
		return "text"
	case InputNumber:
		return "number"
	case InputCheckbox:
		return "checkbox"
	case InputOther:
		return "other"
	default:
		return "unknown"
	}
}

// InputKindFromString maps a wire name back to an InputKind. Unknown
// names map to InputOther.
func InputKindFromString(s string) InputKind {
	switch s {
	case "text":
		return InputText
	case "number":
		return InputNumber
	case "checkbox":
		return InputCheckbox
	default:
		return InputOther
	}
}

// HandleChange coerces the raw input value according to the input kind
// and delegates to SetFieldValue, triggering the same validation pass.
func (f *Form[T]) HandleChange(field string, raw any, kind InputKind) {
	f.SetFieldValue(field, CoerceInput(raw, kind))
}

// CoerceInput applies input-kind coercion to a raw event value:
//
//   - checkbox: the boolean checked state ("on"/"true" strings included)
//   - number: parsed float64, with "" preserved as "" when the input is
//     cleared and unparseable text passed through unchanged
//   - text: the raw string
//   - other: the raw value unchanged
func CoerceInput(raw any, kind InputKind) any {
	switch kind {
	case InputCheckbox:
		switch v := raw.(type) {
		case bool:
			return v
		case string:
			return v == "true" || v == "on" || v == "checked"
		default:
			return false
		}

	case InputNumber:
		switch v := raw.(type) {
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				return ""
			}
			if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return n
			}
			return v
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		default:
			return raw
		}

	case InputText:
		if s, ok := raw.(string); ok {
			return s
		}
		if raw == nil {
			return ""
		}
		return fmt.Sprintf("%v", raw)

	default:
		return raw
	}
}
