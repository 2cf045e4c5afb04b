package assets

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/assetref/pkg/vdom"
)

func TestPipelineProcess(t *testing.T) {
	strategy := NewRelativePathStrategy("assets")
	p, err := NewPipeline(testRegistry(), strategy)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	tree := vdom.Html(
		vdom.Head(
			vdom.Link(vdom.Rel("stylesheet"), vdom.Href("static/button.css?v=2")),
			vdom.Link(vdom.Rel("stylesheet"), vdom.Href("theme:static/theme.css")),
			vdom.Link(vdom.Rel("preconnect"), vdom.Href("https://fonts.example.com")),
		),
	)

	out, err := p.Process(context.Background(), tree, Module("site/widgets"), "site/docs/index.html")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	head := out.Children[0]
	want := []string{
		"../assets/widgets/static/button.css?v=2",
		"../../assets/theme/static/theme.css",
		"https://fonts.example.com",
	}
	for i, w := range want {
		if got, _ := head.Children[i].StringAttr("href"); got != w {
			t.Errorf("link %d href = %q, want %q", i, got, w)
		}
		if head.Children[i].Kind != vdom.KindElement {
			t.Errorf("link %d kind = %v, want Element", i, head.Children[i].Kind)
		}
	}

	collected := strategy.Collected().All()
	if len(collected) != 2 {
		t.Fatalf("collected %d assets, want 2", len(collected))
	}
	data, err := collected[1].Source.ReadText()
	if err != nil || data != ":root{}" {
		t.Errorf("collected source content = %q, %v", data, err)
	}
}

func TestPipelineStopsOnRewriteError(t *testing.T) {
	strategy := NewRelativePathStrategy("")
	p, err := NewPipeline(testRegistry(), strategy)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	tree := vdom.Head(
		vdom.Link(vdom.Href("static/site.css")),
		vdom.Link(vdom.Href("static/missing.css")),
	)
	if _, err := p.Process(context.Background(), tree, Module("site"), "index.html"); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("Process() error = %v, want ErrAssetNotFound", err)
	}
	if strategy.Collected().Len() != 0 {
		t.Errorf("collected %d assets after a failed page", strategy.Collected().Len())
	}
}

func TestPipelineNilStrategy(t *testing.T) {
	p, err := NewPipeline(testRegistry(), nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if _, ok := p.Renderer.Strategy().(*RelativePathStrategy); !ok {
		t.Errorf("Strategy() = %T, want *RelativePathStrategy", p.Renderer.Strategy())
	}
}
