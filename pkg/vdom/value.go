package vdom

import (
	"sort"

	"github.com/vango-dev/assetref/pkg/resource"
)

// ValueKind discriminates attribute values.
type ValueKind uint8

const (
	ValueNull     ValueKind = iota // Bare attribute (e.g. async)
	ValueString                    // Plain string
	ValueResource                  // Resource handle awaiting rendering
)

// String returns the string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "Null"
	case ValueString:
		return "String"
	case ValueResource:
		return "Resource"
	default:
		return "Unknown"
	}
}

// Value is an attribute value: a string, a resource handle, or null.
// The zero Value is Null.
type Value struct {
	kind ValueKind
	str  string // string value, or the suffix of a resource value
	res  resource.Handle
}

// Null is the bare-attribute value.
var Null = Value{}

// Str creates a string value.
func Str(s string) Value {
	return Value{kind: ValueString, str: s}
}

// Res creates a resource value. suffix is a query or fragment ("?v=2",
// "#icon") appended to the rendered path; it may be empty.
func Res(h resource.Handle, suffix string) Value {
	return Value{kind: ValueResource, str: suffix, res: h}
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether v is the bare-attribute value.
func (v Value) IsNull() bool { return v.kind == ValueNull }

// IsResource reports whether v holds a resource handle.
func (v Value) IsResource() bool { return v.kind == ValueResource }

// AsString returns the string and true for string values.
func (v Value) AsString() (string, bool) {
	if v.kind != ValueString {
		return "", false
	}
	return v.str, true
}

// Resource returns the handle, its suffix and true for resource values.
func (v Value) Resource() (resource.Handle, string, bool) {
	if v.kind != ValueResource {
		return nil, "", false
	}
	return v.res, v.str, true
}

// String returns a debug representation.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueResource:
		if v.res == nil {
			return "<resource nil>"
		}
		return "<resource " + v.res.String() + v.str + ">"
	default:
		return "<null>"
	}
}

// Attrs maps attribute names to values.
type Attrs map[string]Value

// Clone returns a shallow copy of the map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasResources reports whether any value is a resource.
func (a Attrs) HasResources() bool {
	for _, v := range a {
		if v.kind == ValueResource {
			return true
		}
	}
	return false
}
