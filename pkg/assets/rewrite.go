package assets

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/assetref/pkg/resource"
	"github.com/vango-dev/assetref/pkg/telemetry"
	"github.com/vango-dev/assetref/pkg/vdom"
)

// Validator checks a resolved handle before it is placed in the tree.
type Validator func(h resource.Handle) error

// ValidateExists fails with ErrAssetNotFound unless h names an existing file.
// I/O errors other than a missing file are reported as the cause.
func ValidateExists(h resource.Handle) error {
	ok, err := h.Exists()
	if ok {
		return nil
	}
	return &Error{Kind: ErrAssetNotFound, LogicalPath: h.String(), Err: err}
}

// Rewriter replaces local asset references in a tree with resource values.
// It is safe for concurrent use.
type Rewriter struct {
	resolver *Resolver
	attrs    map[string][]string
	validate Validator
	logger   *slog.Logger
	metrics  *telemetry.Metrics
}

// NewRewriter creates a rewriter using resolver.
// Relevant options: WithAssetAttrs, WithValidator, WithLogger, WithMetrics.
func NewRewriter(resolver *Resolver, opts ...Option) *Rewriter {
	o := buildOptions(opts)
	validate := o.validator
	if validate == nil {
		validate = func(resource.Handle) error { return nil }
	}
	return &Rewriter{
		resolver: resolver,
		attrs:    o.assetAttrs,
		validate: validate,
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// Rewrite returns tree with every local reference in an asset-bearing
// attribute replaced by a resource value, resolved against component.
// Elements that received a resource become KindPathElement. Nodes without
// local references are returned as they are, so an untouched tree comes
// back as the same pointer.
//
// The first reference that cannot be resolved or does not exist aborts the
// rewrite; the error names the asset, attribute and element.
func (rw *Rewriter) Rewrite(ctx context.Context, tree *vdom.VNode, component any) (out *vdom.VNode, err error) {
	start := time.Now()
	_, span := telemetry.StartSpan(ctx, "assetref.Rewrite",
		attribute.String("assetref.component", describeComponent(component)),
	)
	defer func() {
		telemetry.EndSpan(span, err)
		rw.metrics.Operation("rewrite", start, err)
	}()

	rewritten := 0
	out, err = vdom.Walk(tree, func(n *vdom.VNode) (*vdom.VNode, bool, error) {
		if !n.IsElement() {
			return n, true, nil
		}
		keys, ok := rw.attrs[n.Tag]
		if !ok {
			return n, true, nil
		}

		var attrs vdom.Attrs
		for _, key := range keys {
			raw, ok := n.StringAttr(key)
			if !ok || !IsLocalReference(raw) {
				continue
			}
			ref, suffix := SplitSuffix(raw)
			if ref == "" {
				continue
			}

			h, err := rw.resolve(component, ref)
			if err != nil {
				return nil, false, withElement(err, ErrAssetNotFound, raw, key, n.Tag)
			}
			if attrs == nil {
				attrs = n.Attrs.Clone()
			}
			attrs[key] = vdom.Res(h, suffix)
			rewritten++
		}

		if attrs == nil {
			return n, true, nil
		}
		return n.WithAttrs(attrs), true, nil
	})
	if err != nil {
		rw.logger.Debug("rewrite failed", "component", describeComponent(component), "error", err)
		return nil, err
	}

	rw.logger.Debug("rewrote asset references",
		"component", describeComponent(component),
		"count", rewritten,
	)
	return out, nil
}

func (rw *Rewriter) resolve(component any, ref string) (resource.Handle, error) {
	h, err := rw.resolver.Resolve(component, ref)
	if err != nil {
		return nil, err
	}
	if err := rw.validate(h); err != nil {
		ae := &Error{Kind: ErrAssetNotFound, Err: err}
		if errors.As(err, &ae) {
			cp := *ae
			ae = &cp
		}
		if ae.LogicalPath == "" {
			ae.LogicalPath = h.String()
		}
		if ae.Component == "" {
			ae.Component = describeComponent(component)
		}
		return nil, ae
	}
	return h, nil
}
