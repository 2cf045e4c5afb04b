package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement     VKind = iota // <div>, <link>, etc.
	KindPathElement              // Element carrying resource values
	KindText                     // Plain text node
	KindFragment                 // Grouping without wrapper
	KindComment                  // <!-- comment -->
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindPathElement:
		return "PathElement"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// VNode is a node of the markup tree.
// VNodes are immutable once built; transforms allocate new nodes.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "link")
	Attrs    Attrs    // Element attributes
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindComment
}

// IsElement returns true for both element kinds.
func (v *VNode) IsElement() bool {
	return v != nil && (v.Kind == KindElement || v.Kind == KindPathElement)
}

// IsContainer returns true if the node kind can hold children.
func (v *VNode) IsContainer() bool {
	return v.IsElement() || (v != nil && v.Kind == KindFragment)
}

// Attr returns the value of the named attribute.
func (v *VNode) Attr(key string) (Value, bool) {
	if v == nil {
		return Value{}, false
	}
	val, ok := v.Attrs[key]
	return val, ok
}

// StringAttr returns the named attribute if it holds a string.
func (v *VNode) StringAttr(key string) (string, bool) {
	val, ok := v.Attr(key)
	if !ok {
		return "", false
	}
	return val.AsString()
}

// WithAttrs returns a copy of the node with the given attributes.
// The kind is adjusted: elements holding resource values become
// KindPathElement, elements without them become KindElement.
func (v *VNode) WithAttrs(attrs Attrs) *VNode {
	out := *v
	out.Attrs = attrs
	if out.IsElement() {
		if attrs.HasResources() {
			out.Kind = KindPathElement
		} else {
			out.Kind = KindElement
		}
	}
	return &out
}

// WithChildren returns a copy of the node with the given children.
func (v *VNode) WithChildren(children []*VNode) *VNode {
	out := *v
	out.Children = children
	return &out
}

// Attr represents a single attribute passed to an element factory.
type Attr struct {
	Key   string
	Value Value
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}
