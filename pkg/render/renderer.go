package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/assetref/pkg/vdom"
)

// ErrUnrenderedAsset is returned when a tree still holds resource values.
var ErrUnrenderedAsset = errors.New("render: unrendered asset reference")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes VNode trees to HTML. It holds no per-render state and
// is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	if err := r.renderNode(ew, node, 0); err != nil {
		return err
	}
	return ew.err
}

// RenderDocument writes "<!DOCTYPE html>" followed by node.
func (r *Renderer) RenderDocument(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	ew.WriteString("<!DOCTYPE html>\n")
	if err := r.renderNode(ew, node, 0); err != nil {
		return err
	}
	return ew.err
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w *errWriter, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindPathElement:
		return fmt.Errorf("%w: <%s> was not path-rendered", ErrUnrenderedAsset, node.Tag)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
	case vdom.KindComment:
		w.WriteString("<!--")
		w.WriteString(strings.ReplaceAll(node.Text, "--", "- -"))
		w.WriteString("-->")
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
	return w.err
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w *errWriter, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	w.WriteString(">")

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return w.err
	}

	if rawTextElements[tag] {
		for _, child := range node.Children {
			if child.Kind == vdom.KindText {
				w.WriteString(child.Text)
			}
		}
	} else {
		hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
		if r.config.Pretty && hasBlockChildren {
			w.WriteString("\n")
		}

		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth+1); err != nil {
				return err
			}
		}

		if r.config.Pretty && hasBlockChildren {
			r.writeIndent(w, depth)
		}
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteString(">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
	return w.err
}

// renderAttributes renders all attributes in sorted key order.
func (r *Renderer) renderAttributes(w *errWriter, node *vdom.VNode) error {
	for _, key := range node.Attrs.Keys() {
		value := node.Attrs[key]
		switch value.Kind() {
		case vdom.ValueNull:
			w.WriteString(" ")
			w.WriteString(key)
		case vdom.ValueString:
			s, _ := value.AsString()
			fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s))
		default:
			return fmt.Errorf("%w: attribute %q on <%s> holds %s", ErrUnrenderedAsset, key, node.Tag, value)
		}
	}
	return nil
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}
