package assets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/assetref/pkg/resource"
	"github.com/vango-dev/assetref/pkg/vdom"
)

func newTestRewriter(t *testing.T, loader resource.Loader, opts ...Option) *Rewriter {
	t.Helper()
	return NewRewriter(newTestResolver(t, loader, opts...), opts...)
}

func TestRewriteLocalReferences(t *testing.T) {
	rw := newTestRewriter(t, testRegistry())

	tree := vdom.Html(
		vdom.Head(
			vdom.Link(vdom.Rel("stylesheet"), vdom.Href("static/button.css")),
			vdom.Script(vdom.Src("../static/site.css")),
		),
	)

	out, err := rw.Rewrite(context.Background(), tree, Module("site/widgets"))
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	link := out.Children[0].Children[0]
	if link.Kind != vdom.KindPathElement {
		t.Errorf("link kind = %v, want PathElement", link.Kind)
	}
	v, _ := link.Attr("href")
	h, suffix, ok := v.Resource()
	if !ok {
		t.Fatalf("href = %v, want resource", v)
	}
	if h.String() != "site/widgets/static/button.css" || suffix != "" {
		t.Errorf("href = %q%q", h.String(), suffix)
	}
	if rel, _ := link.StringAttr("rel"); rel != "stylesheet" {
		t.Errorf("rel = %q, want stylesheet", rel)
	}

	script := out.Children[0].Children[1]
	v, _ = script.Attr("src")
	if h, _, _ := v.Resource(); h == nil || h.String() != "site/static/site.css" {
		t.Errorf("src = %v, want site/static/site.css", v)
	}

	// input tree is untouched
	if tree.Children[0].Children[0].Kind != vdom.KindElement {
		t.Error("Rewrite() mutated its input")
	}
}

func TestRewriteKeepsSuffix(t *testing.T) {
	rw := newTestRewriter(t, testRegistry())

	tree := vdom.Link(vdom.Href("static/site.css?v=3#main"))
	out, err := rw.Rewrite(context.Background(), tree, Module("site"))
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	v, _ := out.Attr("href")
	_, suffix, _ := v.Resource()
	if suffix != "?v=3#main" {
		t.Errorf("suffix = %q, want %q", suffix, "?v=3#main")
	}
}

func TestRewriteExternalPassthrough(t *testing.T) {
	loader := &countingLoader{loader: testRegistry()}
	rw := newTestRewriter(t, loader)

	tree := vdom.Div(
		vdom.Link(vdom.Href("https://cdn.example.com/x.css")),
		vdom.Link(vdom.Href("//cdn.example.com/x.css")),
		vdom.Script(vdom.Src("data:text/javascript,alert(1)")),
		vdom.Link(vdom.Href("#top")),
		vdom.Link(vdom.Href("")),
		vdom.Link(vdom.Href("?v=1")),
		vdom.Img(vdom.Src("static/logo.svg")),
		vdom.Text("static/site.css"),
	)

	out, err := rw.Rewrite(context.Background(), tree, nil)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if out != tree {
		t.Error("Rewrite() reallocated a tree without local references")
	}
	if got := loader.calls.Load(); got != 0 {
		t.Errorf("loader called %d times, want 0", got)
	}
}

func TestRewritePreservesUntouchedSubtrees(t *testing.T) {
	rw := newTestRewriter(t, testRegistry())

	static := vdom.Div(vdom.P(vdom.Text("hello")))
	tree := vdom.Body(static, vdom.Link(vdom.Href("static/site.css")))

	out, err := rw.Rewrite(context.Background(), tree, Module("site"))
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if out == tree {
		t.Fatal("Rewrite() returned the input root although a link changed")
	}
	if out.Children[0] != static {
		t.Error("unchanged subtree was reallocated")
	}
}

func TestRewriteFailsFast(t *testing.T) {
	rw := newTestRewriter(t, testRegistry())

	tree := vdom.Head(
		vdom.Link(vdom.Href("static/missing.css")),
		vdom.Script(vdom.Src("static/also-missing.js")),
	)

	out, err := rw.Rewrite(context.Background(), tree, Module("site"))
	if out != nil {
		t.Errorf("Rewrite() tree = %v, want nil", out)
	}
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("Rewrite() error = %v, want ErrAssetNotFound", err)
	}

	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("error %T is not *Error", err)
	}
	if ae.Asset != "static/missing.css" || ae.Attr != "href" || ae.Tag != "link" {
		t.Errorf("Error = %+v", ae)
	}
	if ae.Component != "site" || ae.LogicalPath != "site/static/missing.css" {
		t.Errorf("Error component/path = %q, %q", ae.Component, ae.LogicalPath)
	}
	for _, want := range []string{"static/missing.css", "href", "link"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestRewriteResolutionErrors(t *testing.T) {
	rw := newTestRewriter(t, testRegistry())

	tests := []struct {
		name      string
		component any
		href      string
		kind      error
	}{
		{"invalid component", nil, "static/site.css", ErrInvalidComponent},
		{"unknown package", nil, "nope:x.css", ErrPackageNotFound},
		{"escape", Module("site"), "../../x.css", ErrAssetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rw.Rewrite(context.Background(), vdom.Link(vdom.Href(tt.href)), tt.component)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Rewrite() error = %v, want %v", err, tt.kind)
			}
			var ae *Error
			if errors.As(err, &ae) && (ae.Attr != "href" || ae.Tag != "link") {
				t.Errorf("Error attr/tag = %q, %q", ae.Attr, ae.Tag)
			}
		})
	}
}

func TestRewriteCustomAttrs(t *testing.T) {
	rw := newTestRewriter(t, testRegistry(),
		WithAssetAttrs(map[string][]string{"img": {"src"}}),
	)

	tree := vdom.Div(
		vdom.Img(vdom.Src("static/logo.svg")),
		vdom.Link(vdom.Href("static/site.css")),
	)
	out, err := rw.Rewrite(context.Background(), tree, Module("site"))
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if out.Children[0].Kind != vdom.KindPathElement {
		t.Error("img was not rewritten")
	}
	if out.Children[1] != tree.Children[1] {
		t.Error("link was rewritten although not configured")
	}
}

func TestRewriteCustomValidator(t *testing.T) {
	var seen []string
	rw := newTestRewriter(t, testRegistry(),
		WithValidator(func(h resource.Handle) error {
			seen = append(seen, h.String())
			return nil
		}),
	)

	_, err := rw.Rewrite(context.Background(), vdom.Link(vdom.Href("static/generated.css")), Module("site"))
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if len(seen) != 1 || seen[0] != "site/static/generated.css" {
		t.Errorf("validator saw %v", seen)
	}

	reject := errors.New("rejected")
	rw = newTestRewriter(t, testRegistry(),
		WithValidator(func(resource.Handle) error { return reject }),
	)
	_, err = rw.Rewrite(context.Background(), vdom.Link(vdom.Href("static/site.css")), Module("site"))
	if !errors.Is(err, ErrAssetNotFound) || !errors.Is(err, reject) {
		t.Errorf("Rewrite() error = %v, want ErrAssetNotFound wrapping the validator error", err)
	}
}
