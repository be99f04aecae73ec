package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// Element builds an element node. Arguments may be Attr values, *VNode
// children, plain strings (converted to text nodes), or slices of any of
// those. Nil arguments are skipped, which allows conditional attributes
// and children.
func Element(tag string, args ...any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag}
	for _, arg := range args {
		applyArg(node, arg)
	}
	return node
}

func applyArg(node *VNode, arg any) {
	switch v := arg.(type) {
	case nil:
	case Attr:
		if v.Key != "" {
			if node.Props == nil {
				node.Props = make(Props)
			}
			node.Props[v.Key] = v.Value
		}
	case []Attr:
		for _, attr := range v {
			applyArg(node, attr)
		}
	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*VNode:
		for _, child := range v {
			if child != nil {
				node.Children = append(node.Children, child)
			}
		}
	case string:
		node.Children = append(node.Children, Text(v))
	case []any:
		for _, item := range v {
			applyArg(node, item)
		}
	}
}

// Text creates a text node. Content is HTML-escaped at render time.
func Text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

// Raw creates a raw HTML node. Content is run through the sanitizer at
// render time.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Children: children}
}

// Common elements.

func Div(args ...any) *VNode      { return Element("div", args...) }
func Span(args ...any) *VNode     { return Element("span", args...) }
func P(args ...any) *VNode        { return Element("p", args...) }
func H1(args ...any) *VNode       { return Element("h1", args...) }
func H2(args ...any) *VNode       { return Element("h2", args...) }
func Form(args ...any) *VNode     { return Element("form", args...) }
func Label(args ...any) *VNode    { return Element("label", args...) }
func Input(args ...any) *VNode    { return Element("input", args...) }
func Textarea(args ...any) *VNode { return Element("textarea", args...) }
func Select(args ...any) *VNode   { return Element("select", args...) }
func Option(args ...any) *VNode   { return Element("option", args...) }
func Button(args ...any) *VNode   { return Element("button", args...) }

// Common attributes.

func Class(v string) Attr       { return Attr{Key: "class", Value: v} }
func ID(v string) Attr          { return Attr{Key: "id", Value: v} }
func Name(v string) Attr        { return Attr{Key: "name", Value: v} }
func Type(v string) Attr        { return Attr{Key: "type", Value: v} }
func Value(v any) Attr          { return Attr{Key: "value", Value: v} }
func Placeholder(v string) Attr { return Attr{Key: "placeholder", Value: v} }
func For(v string) Attr         { return Attr{Key: "for", Value: v} }
func Checked(v bool) Attr       { return Attr{Key: "checked", Value: v} }
func Disabled(v bool) Attr      { return Attr{Key: "disabled", Value: v} }
