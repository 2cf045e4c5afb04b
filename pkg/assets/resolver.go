package assets

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/vango-dev/assetref/pkg/resource"
	"github.com/vango-dev/assetref/pkg/telemetry"
)

// Resolver turns a component and an asset reference into a resource handle.
// It is safe for concurrent use.
type Resolver struct {
	loader  resource.Loader
	cache   Cache
	group   singleflight.Group
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewResolver creates a resolver over loader.
// Relevant options: WithCache, WithCacheSize, WithLogger, WithMetrics.
func NewResolver(loader resource.Loader, opts ...Option) (*Resolver, error) {
	o := buildOptions(opts)

	cache := o.cache
	if cache == nil {
		c, err := NewLRUCache(o.cacheSize, o.metrics)
		if err != nil {
			return nil, fmt.Errorf("resolver cache: %w", err)
		}
		cache = c
	}

	return &Resolver{
		loader:  loader,
		cache:   cache,
		logger:  o.logger,
		metrics: o.metrics,
	}, nil
}

// Resolve returns a handle for asset. When asset contains ':' it is a
// package path and component is ignored (it may be nil); otherwise asset is
// resolved against the module of component.
//
// Resolve does not check that the resource exists. It only loads (or reuses)
// the resource root of the owning module.
func (r *Resolver) Resolve(component any, asset string) (resource.Handle, error) {
	kind := "relative"
	module, rel, isPkg := isPackagePath(asset)
	if isPkg {
		kind = "package"
	} else {
		m, err := ModuleOf(component)
		if err != nil {
			r.metrics.Resolve(kind, err)
			return nil, &Error{
				Kind:      ErrInvalidComponent,
				Asset:     asset,
				Component: describeComponent(component),
				Err:       err,
			}
		}
		module, rel = m, asset
	}

	h, err := r.locate(module, rel, asset)
	r.metrics.Resolve(kind, err)
	return h, err
}

// locate finds the module root that owns module/rel.
func (r *Resolver) locate(module, rel, asset string) (resource.Handle, error) {
	if module == "" {
		return nil, &Error{Kind: ErrPackageNotFound, Asset: asset}
	}

	if _, err := r.root(module); err != nil {
		return nil, &Error{Kind: ErrPackageNotFound, Asset: asset, Component: module, Err: err}
	}

	logical := path.Join(module, strings.TrimPrefix(rel, "/"))
	if logical == module || logical == ".." || strings.HasPrefix(logical, "../") {
		return nil, &Error{
			Kind:        ErrAssetNotFound,
			Asset:       asset,
			Component:   module,
			LogicalPath: logical,
			Err:         fmt.Errorf("reference does not name a file inside the module tree"),
		}
	}

	// A "../" reference may leave the module; the nearest ancestor module
	// known to the loader owns the resource then.
	for owner := module; owner != ""; owner = parentModule(owner) {
		if !strings.HasPrefix(logical, owner+"/") {
			continue
		}
		root, err := r.root(owner)
		if err != nil {
			continue
		}
		return resource.NewHandle(root, strings.TrimPrefix(logical, owner+"/"), logical), nil
	}

	return nil, &Error{
		Kind:        ErrPackageNotFound,
		Asset:       asset,
		Component:   module,
		LogicalPath: logical,
		Err:         fmt.Errorf("no module owns the resolved path"),
	}
}

// root returns the resource root of module, loading it at most once per
// cache lifetime even under concurrent lookups.
func (r *Resolver) root(module string) (fs.FS, error) {
	if root, ok := r.cache.Get(module); ok {
		r.metrics.CacheHit()
		return root, nil
	}

	v, err, _ := r.group.Do(module, func() (any, error) {
		// another caller may have finished loading since the Get above
		if root, ok := r.cache.Get(module); ok {
			return root, nil
		}
		r.metrics.CacheMiss()
		root, err := r.loader.Root(module)
		if err != nil {
			return nil, err
		}
		r.cache.Add(module, root)
		r.logger.Debug("loaded resource root", "module", module)
		return root, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(fs.FS), nil
}

// parentModule returns the parent of a slash-separated module name, or ""
// for a top-level name.
func parentModule(module string) string {
	i := strings.LastIndexByte(module, '/')
	if i < 0 {
		return ""
	}
	return module[:i]
}
