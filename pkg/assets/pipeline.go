package assets

import (
	"context"

	"github.com/vango-dev/assetref/pkg/resource"
	"github.com/vango-dev/assetref/pkg/vdom"
)

// Pipeline runs the rewrite and render passes for one component tree.
type Pipeline struct {
	Rewriter *Rewriter
	Renderer *Renderer
}

// NewPipeline wires a Resolver, Rewriter and Renderer sharing opts.
// A nil strategy selects NewRelativePathStrategy("").
func NewPipeline(loader resource.Loader, strategy Strategy, opts ...Option) (*Pipeline, error) {
	resolver, err := NewResolver(loader, opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Rewriter: NewRewriter(resolver, opts...),
		Renderer: NewRenderer(strategy, opts...),
	}, nil
}

// Process rewrites tree for component and renders it for target.
func (p *Pipeline) Process(ctx context.Context, tree *vdom.VNode, component any, target string) (*vdom.VNode, error) {
	rewritten, err := p.Rewriter.Rewrite(ctx, tree, component)
	if err != nil {
		return nil, err
	}
	return p.Renderer.Render(ctx, rewritten, target)
}
