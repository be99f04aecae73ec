package form

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyMergePatch applies an RFC 7386 JSON merge patch document to the
// current values, then shallow-merges the result like SetValues: known
// fields only, no validation, no touch. Numbers arrive as float64 per
// JSON decoding.
func (f *Form[T]) ApplyMergePatch(patch []byte) error {
	current, err := json.Marshal(f.values.Get())
	if err != nil {
		return fmt.Errorf("form: marshal values: %w", err)
	}

	merged, err := jsonpatch.MergePatch(current, patch)
	if err != nil {
		return fmt.Errorf("form: apply merge patch: %w", err)
	}

	var next map[string]any
	if err := json.Unmarshal(merged, &next); err != nil {
		return fmt.Errorf("form: decode patched values: %w", err)
	}

	f.SetValues(next)
	return nil
}

// ApplyPatch applies an RFC 6902 JSON patch (an operations array) to the
// current values, with the same merge semantics as ApplyMergePatch.
func (f *Form[T]) ApplyPatch(ops []byte) error {
	patch, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return fmt.Errorf("form: decode patch: %w", err)
	}

	current, err := json.Marshal(f.values.Get())
	if err != nil {
		return fmt.Errorf("form: marshal values: %w", err)
	}

	patched, err := patch.Apply(current)
	if err != nil {
		return fmt.Errorf("form: apply patch: %w", err)
	}

	var next map[string]any
	if err := json.Unmarshal(patched, &next); err != nil {
		return fmt.Errorf("form: decode patched values: %w", err)
	}

	f.SetValues(next)
	return nil
}
