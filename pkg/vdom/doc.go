// Package vdom provides the immutable node tree that asset references are
// rewritten and rendered in.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments and comments. Attribute values are a closed sum type (Value):
// a string, a resource handle plus an optional query/fragment suffix, or
// null (a bare boolean attribute).
//
// Only KindPathElement nodes may carry resource values. They exist between
// asset rewriting and path rendering; serializers refuse them.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Html(
//	    Head(
//	        Link(Rel("stylesheet"), Href("static/site.css")),
//	        Script(Src("widgets:js/app.js"), Defer_()),
//	    ),
//	    Body(H1(Text("Title"))),
//	)
//
// # Walking
//
// Walk applies a Visitor to every node and rebuilds only the ancestors of
// changed nodes. A walk that changes nothing returns the very same pointer,
// so callers can compare the result with the input to detect a no-op.
//
// Nodes are never mutated after construction. Code that needs a modified
// node builds a new one with WithAttrs or WithChildren.
package vdom
