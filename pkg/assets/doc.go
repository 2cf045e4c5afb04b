// Package assets resolves, rewrites and renders static-asset references in
// vdom trees.
//
// Components reference assets by a name relative to their own Go package
// ("static/site.css", "./js/app.js", "../shared/logo.svg") or by a package
// path ("example.com/ui:css/button.css"). The pipeline turns those names
// into paths that are correct for wherever the page ends up being served.
//
// # Pipeline
//
//	component tree
//	    │  Rewriter.Rewrite (Resolver + existence check)
//	    ▼
//	tree with resource handles (KindPathElement)
//	    │  Renderer.Render (Strategy)
//	    ▼
//	tree with plain string attributes → serializer
//
// # Resolution
//
// A reference containing ':' is a package path: the text before the first
// colon names the package, the rest is the path inside it. Anything else is
// resolved against the module of the component (see ModuleOf). Resource
// roots come from a resource.Loader and are cached in a bounded LRU keyed by
// module name.
//
// # Rendering
//
// RelativePathStrategy computes the shortest "../" path from the output
// target to each asset, optionally under a site prefix, and collects every
// asset it renders in an AssetSet so a build step can copy them:
//
//	strategy := assets.NewRelativePathStrategy("assets")
//	p := assets.NewPipeline(loader, strategy)
//
//	page, err := p.Process(ctx, tree, Header{}, "docs/intro.html")
//	...
//	for _, ref := range strategy.Collected().All() {
//	    // copy ref.Source to <out>/assets/<ref.ModulePath>
//	}
//
// All failures are fatal to the call that hit them and are reported as
// *Error values that match one of ErrInvalidComponent, ErrPackageNotFound,
// ErrAssetNotFound or ErrUnsupportedValue with errors.Is.
package assets
