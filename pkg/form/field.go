package form

import (
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Field wraps an input element with value binding and error display.
// The input gets the field's current value and name; when the field is
// touched and failing, an error class and message node are added. The
// error is gated on touched so users are not shouted at before they have
// left the field.
func (f *Form[T]) Field(name string, input *vdom.VNode) *vdom.VNode {
	if input.Props == nil {
		input.Props = make(vdom.Props)
	}
	input.Props["name"] = name

	value := f.Get(name)
	if checked, ok := value.(bool); ok && input.Props["type"] == "checkbox" {
		input.Props["checked"] = checked
	} else if value != nil {
		input.Props["value"] = value
	}

	state := f.Snapshot()
	msg, failing := state.Errors[name]
	showError := failing && state.Touched[name]

	if showError {
		if existing, _ := input.Props["class"].(string); existing != "" {
			input.Props["class"] = existing + " field-error"
		} else {
			input.Props["class"] = "field-error"
		}
	}

	children := make([]any, 0, 2)
	children = append(children, input)
	if showError {
		children = append(children, vdom.Span(
			vdom.Class("field-error-message"),
			vdom.Text(msg),
		))
	}

	return vdom.Div(vdom.Class("field"), children)
}
