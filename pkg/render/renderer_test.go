package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/formkit/pkg/vdom"
)

func renderString(t *testing.T, config Config, node *vdom.VNode) string {
	t.Helper()
	s, err := New(config).ToString(node)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return s
}

func TestRenderElement(t *testing.T) {
	html := renderString(t, Config{}, vdom.Div(vdom.Class("box"), "hi"))

	if html != `<div class="box">hi</div>` {
		t.Errorf("Unexpected output: %s", html)
	}
}

func TestRenderVoidElement(t *testing.T) {
	html := renderString(t, Config{}, vdom.Input(vdom.Type("text"), vdom.Name("email")))

	if html != `<input name="email" type="text">` {
		t.Errorf("Unexpected output: %s", html)
	}
}

func TestRenderAttributesSorted(t *testing.T) {
	node := vdom.Element("a", vdom.Attr{Key: "z", Value: "1"}, vdom.Attr{Key: "a", Value: "2"})
	html := renderString(t, Config{}, node)

	if html != `<a a="2" z="1"></a>` {
		t.Errorf("Expected sorted attributes, got %s", html)
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	html := renderString(t, Config{}, vdom.Button(vdom.Disabled(true), "Go"))
	if html != `<button disabled>Go</button>` {
		t.Errorf("Expected bare boolean attribute, got %s", html)
	}

	html = renderString(t, Config{}, vdom.Button(vdom.Disabled(false), "Go"))
	if html != `<button>Go</button>` {
		t.Errorf("Expected false boolean dropped, got %s", html)
	}
}

func TestRenderEscapesText(t *testing.T) {
	html := renderString(t, Config{}, vdom.P(vdom.Text(`<script>alert("x")</script>`)))

	if strings.Contains(html, "<script>") {
		t.Errorf("Text not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("Expected entity-escaped text, got %s", html)
	}
}

func TestRenderEscapesAttributes(t *testing.T) {
	html := renderString(t, Config{}, vdom.Div(vdom.Class(`"onmouseover="evil()`)))

	if strings.Contains(html, `class=""onmouseover=`) {
		t.Errorf("Attribute not escaped: %s", html)
	}
}

func TestRenderSanitizesRaw(t *testing.T) {
	node := vdom.Div(vdom.Raw(`<em>fine</em><script>alert("x")</script>`))
	html := renderString(t, Config{}, node)

	if !strings.Contains(html, "<em>fine</em>") {
		t.Errorf("Expected harmless markup kept, got %s", html)
	}
	if strings.Contains(html, "script") {
		t.Errorf("Expected script stripped, got %s", html)
	}
}

func TestRenderFragment(t *testing.T) {
	node := vdom.Fragment(vdom.Span("a"), vdom.Span("b"))
	html := renderString(t, Config{}, node)

	if html != `<span>a</span><span>b</span>` {
		t.Errorf("Unexpected output: %s", html)
	}
}

func TestRenderNil(t *testing.T) {
	if html := renderString(t, Config{}, nil); html != "" {
		t.Errorf("Expected empty output for nil node, got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	node := vdom.Div(vdom.Span("a"))
	html := renderString(t, Config{Pretty: true}, node)

	if !strings.Contains(html, "\n") {
		t.Errorf("Expected newlines in pretty output, got %q", html)
	}
	if !strings.Contains(html, "  <span>") {
		t.Errorf("Expected indented child, got %q", html)
	}
}

func TestRenderValueAttribute(t *testing.T) {
	// Non-string values stringify.
	html := renderString(t, Config{}, vdom.Input(vdom.Value(42.0)))
	if html != `<input value="42">` {
		t.Errorf("Unexpected output: %s", html)
	}
}
