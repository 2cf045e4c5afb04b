// Package render serializes VNode trees to HTML.
//
// Serialization is the last step of the asset pipeline: trees must have
// gone through assets.Renderer first, so that no attribute still holds a
// resource handle. A path-carrying node left in the tree is an error, not
// something to guess a path for.
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// Full documents get a DOCTYPE:
//
//	err := renderer.RenderDocument(w, node)
//
// All text and attribute values are escaped. Null attribute values are
// written as bare attributes ("defer", "async").
package render
