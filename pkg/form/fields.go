package form

import (
	"reflect"
	"strings"
)

// fieldMeta describes one declared field of the values struct.
type fieldMeta struct {
	name       string
	fieldIndex int
	fieldType  reflect.Type
}

// parseFields extracts the declared fields from the values struct type,
// in struct declaration order. The form tag names the field; untagged
// exported fields use the lowercased Go name; `form:"-"` opts out.
func parseFields(t reflect.Type) ([]string, map[string]fieldMeta) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, map[string]fieldMeta{}
	}

	var order []string
	meta := make(map[string]fieldMeta)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("form")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		if name == "-" {
			continue
		}

		order = append(order, name)
		meta[name] = fieldMeta{
			name:       name,
			fieldIndex: i,
			fieldType:  field.Type,
		}
	}

	return order, meta
}

// structToMap copies the struct's declared fields into a values map.
func structToMap[T any](v T, order []string, meta map[string]fieldMeta) map[string]any {
	values := make(map[string]any, len(order))
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return values
	}
	for _, name := range order {
		m := meta[name]
		fv := rv.Field(m.fieldIndex)
		if fv.CanInterface() {
			values[name] = fv.Interface()
		}
	}
	return values
}

// mapToStruct materializes the typed values struct from the values map.
// Entries whose dynamic type does not convert to the struct field's type
// (a cleared numeric input holding "") leave that field at its zero value.
func mapToStruct[T any](values map[string]any, meta map[string]fieldMeta) T {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return out
	}
	for name, m := range meta {
		raw, ok := values[name]
		if !ok || raw == nil {
			continue
		}
		fv := rv.Field(m.fieldIndex)
		if !fv.CanSet() {
			continue
		}
		nv := reflect.ValueOf(raw)
		if nv.Type().AssignableTo(fv.Type()) {
			fv.Set(nv)
		} else if nv.Type().ConvertibleTo(fv.Type()) && convertible(nv.Kind(), fv.Kind()) {
			fv.Set(nv.Convert(fv.Type()))
		}
	}
	return out
}

// convertible restricts reflect conversions to the ones that make sense
// for form values: numeric widening/narrowing and string-to-string. It
// notably rejects string→int style conversions, which reflect would
// happily perform as a rune cast.
func convertible(from, to reflect.Kind) bool {
	if from == reflect.String || to == reflect.String {
		return from == to
	}
	return isNumericKind(from) && isNumericKind(to)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// copyValues returns a shallow copy of the values map.
func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

// copyStringMap returns a shallow copy of a string-keyed string map.
func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// copyBoolMap returns a shallow copy of a string-keyed bool map.
func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
