package vdom

import (
	"testing"
	"testing/fstest"

	"github.com/vango-dev/assetref/pkg/resource"
)

func testHandle(logical string) resource.Handle {
	return resource.NewHandle(fstest.MapFS{"x.css": {}}, "x.css", logical)
}

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindPathElement, "PathElement"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComment, "Comment"},
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

func TestVNodeIsContainer(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hi"), false},
		{"comment node", Comment("hi"), false},
		{"element", Div(), true},
		{"path element", Link(AssetAttr("href", testHandle("a/x.css"))), true},
		{"fragment", Fragment(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsContainer(); got != tt.want {
				t.Errorf("IsContainer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeWithAttrsAdjustsKind(t *testing.T) {
	plain := Link(Href("x.css"))
	if plain.Kind != KindElement {
		t.Fatalf("Kind = %v, want Element", plain.Kind)
	}

	attrs := plain.Attrs.Clone()
	attrs["href"] = Res(testHandle("a/x.css"), "")
	withRes := plain.WithAttrs(attrs)
	if withRes.Kind != KindPathElement {
		t.Errorf("Kind = %v, want PathElement", withRes.Kind)
	}
	if plain.Kind != KindElement {
		t.Error("WithAttrs mutated the original node")
	}
	if v, _ := plain.StringAttr("href"); v != "x.css" {
		t.Error("WithAttrs mutated the original attributes")
	}

	back := withRes.WithAttrs(Attrs{"href": Str("x.css")})
	if back.Kind != KindElement {
		t.Errorf("Kind = %v, want Element", back.Kind)
	}
}

func TestVNodeWithChildren(t *testing.T) {
	child := Text("a")
	node := Div(child)
	next := node.WithChildren([]*VNode{Text("b")})

	if node.Children[0] != child {
		t.Error("WithChildren mutated the original node")
	}
	if next.Children[0].Text != "b" {
		t.Errorf("child text = %q, want b", next.Children[0].Text)
	}
	if next.Tag != "div" {
		t.Errorf("Tag = %q, want div", next.Tag)
	}
}

func TestAttrIsEmpty(t *testing.T) {
	if !(Attr{}).IsEmpty() {
		t.Error("zero Attr should be empty")
	}
	if ID("x").IsEmpty() {
		t.Error("ID attr should not be empty")
	}
}
