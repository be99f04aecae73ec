package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementBuilder(t *testing.T) {
	node := Div(Class("box"), ID("main"),
		Span("hello"),
		P(Text("world")),
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("Unexpected node: %+v", node)
	}
	if node.Props["class"] != "box" || node.Props["id"] != "main" {
		t.Errorf("Unexpected props: %v", node.Props)
	}
	if len(node.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(node.Children))
	}
	if node.Children[0].Tag != "span" {
		t.Errorf("Expected span first, got %s", node.Children[0].Tag)
	}
}

func TestElementStringBecomesText(t *testing.T) {
	node := P("hello")

	if len(node.Children) != 1 {
		t.Fatalf("Expected 1 child, got %d", len(node.Children))
	}
	child := node.Children[0]
	if child.Kind != KindText || child.Text != "hello" {
		t.Errorf("Expected text node, got %+v", child)
	}
}

func TestElementSkipsNil(t *testing.T) {
	var missing *VNode
	node := Div(nil, missing, Span("x"))

	if len(node.Children) != 1 {
		t.Errorf("Expected nil arguments skipped, got %d children", len(node.Children))
	}
}

func TestElementSlices(t *testing.T) {
	items := []*VNode{Span("a"), Span("b")}
	attrs := []Attr{Class("c"), ID("i")}

	node := Div(attrs, items)

	if len(node.Children) != 2 {
		t.Errorf("Expected slice children flattened, got %d", len(node.Children))
	}
	if node.Props["class"] != "c" || node.Props["id"] != "i" {
		t.Errorf("Expected slice attrs applied, got %v", node.Props)
	}
}

func TestFragment(t *testing.T) {
	node := Fragment(Span("a"), Span("b"))

	if node.Kind != KindFragment {
		t.Errorf("Expected fragment kind, got %v", node.Kind)
	}
	if len(node.Children) != 2 {
		t.Errorf("Expected 2 children, got %d", len(node.Children))
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") {
		t.Error("Expected input to be void")
	}
	if IsVoidElement("div") {
		t.Error("Expected div not to be void")
	}
}

func TestFuncComponent(t *testing.T) {
	c := Func(func() *VNode { return Div() })
	if c.Render().Tag != "div" {
		t.Error("Expected component to render")
	}
}
