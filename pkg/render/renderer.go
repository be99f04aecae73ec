package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vango-dev/formkit/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output. Development only; it inflates the
	// response size.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// Sanitizer is the policy applied to Raw nodes. Defaults to
	// bluemonday.UGCPolicy (common rich-text elements, no scripts).
	Sanitizer *bluemonday.Policy
}

// Renderer renders VNode trees to HTML.
type Renderer struct {
	config Config
}

// New creates a Renderer with the given configuration.
func New(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Sanitizer == nil {
		config.Sanitizer = bluemonday.UGCPolicy()
	}
	return &Renderer{config: config}
}

// ToString renders a VNode tree to an HTML string.
func (r *Renderer) ToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.ToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToWriter streams a VNode tree to the given writer.
func (r *Renderer) ToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escape(node.Text, false))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, r.config.Sanitizer.Sanitize(node.Text))
		return err
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "<"+node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node.Props); err != nil {
		return err
	}

	if vdom.IsVoidElement(node.Tag) {
		_, err := io.WriteString(w, ">")
		if err == nil && r.config.Pretty {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	pretty := r.config.Pretty && len(node.Children) > 0 && hasElementChildren(node)
	if pretty {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if pretty {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</"+node.Tag+">")
	if err == nil && r.config.Pretty {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// renderAttributes writes the element's attributes in sorted key order
// for deterministic output. Boolean attributes render bare when true and
// are dropped when false; nil values are dropped.
func (r *Renderer) renderAttributes(w io.Writer, props vdom.Props) error {
	if len(props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		if value == nil {
			continue
		}

		switch v := value.(type) {
		case bool:
			if v {
				if _, err := io.WriteString(w, " "+key); err != nil {
					return err
				}
			}
		case string:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escape(v, true)); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escape(fmt.Sprintf("%v", v), true)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) writeIndent(w io.Writer, depth int) error {
	_, err := io.WriteString(w, strings.Repeat(r.config.Indent, depth))
	return err
}

// hasElementChildren reports whether any child is an element, which is
// when pretty printing puts children on their own lines.
func hasElementChildren(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if child != nil && child.Kind == vdom.KindElement {
			return true
		}
	}
	return false
}

// escape converts HTML-special characters to entities. Attribute mode
// also escapes whitespace that could break attribute parsing.
func escape(s string, attr bool) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			if attr {
				buf.WriteString("&#10;")
			} else {
				buf.WriteRune(r)
			}
		case '\t':
			if attr {
				buf.WriteString("&#9;")
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
