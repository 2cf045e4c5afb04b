package assets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/assetref/pkg/telemetry"
	"github.com/vango-dev/assetref/pkg/vdom"
)

// Renderer turns resource values back into strings for a given output
// document. It is safe for concurrent use when its strategy is.
type Renderer struct {
	strategy  Strategy
	collector *AssetSet
	logger    *slog.Logger
	metrics   *telemetry.Metrics
}

// NewRenderer creates a renderer. A nil strategy selects
// NewRelativePathStrategy("").
// Relevant options: WithCollector, WithLogger, WithMetrics.
func NewRenderer(strategy Strategy, opts ...Option) *Renderer {
	o := buildOptions(opts)
	if strategy == nil {
		strategy = NewRelativePathStrategy("")
	}
	return &Renderer{
		strategy:  strategy,
		collector: o.collector,
		logger:    o.logger,
		metrics:   o.metrics,
	}
}

// Strategy returns the path strategy in use.
func (r *Renderer) Strategy() Strategy {
	return r.strategy
}

// Collector returns the set given with WithCollector, or nil.
func (r *Renderer) Collector() *AssetSet {
	return r.collector
}

// Render returns tree with every resource value replaced by the string the
// strategy computes for target, the logical path of the output document.
// A query or fragment kept from the original reference is appended.
// Rendered elements become plain KindElement nodes; other nodes are
// returned as they are.
//
// Assets are recorded in the strategy (when it is a Recorder) and in the
// collector only once the whole tree rendered successfully.
func (r *Renderer) Render(ctx context.Context, tree *vdom.VNode, target string) (out *vdom.VNode, err error) {
	start := time.Now()
	_, span := telemetry.StartSpan(ctx, "assetref.Render",
		attribute.String("assetref.target", target),
	)
	defer func() {
		telemetry.EndSpan(span, err)
		r.metrics.Operation("render", start, err)
	}()

	var refs []AssetReference
	out, err = vdom.Walk(tree, func(n *vdom.VNode) (*vdom.VNode, bool, error) {
		if n.Kind != vdom.KindPathElement {
			return n, true, nil
		}

		attrs := n.Attrs.Clone()
		for _, key := range attrs.Keys() {
			h, suffix, ok := attrs[key].Resource()
			if !ok {
				continue
			}
			if h == nil {
				return nil, false, &Error{
					Kind: ErrUnsupportedValue,
					Attr: key,
					Tag:  n.Tag,
					Err:  fmt.Errorf("resource value without a handle"),
				}
			}
			p, err := r.strategy.CalculatePath(h, target)
			if err != nil {
				return nil, false, &Error{
					Kind:        ErrUnsupportedValue,
					Attr:        key,
					Tag:         n.Tag,
					LogicalPath: h.String(),
					Err:         err,
				}
			}
			attrs[key] = vdom.Str(p + suffix)
			refs = append(refs, NewAssetReference(h))
		}
		return n.WithAttrs(attrs), true, nil
	})
	if err != nil {
		return nil, err
	}

	r.record(refs)
	r.logger.Debug("rendered asset paths", "target", target, "count", len(refs))
	return out, nil
}

func (r *Renderer) record(refs []AssetReference) {
	rec, _ := r.strategy.(Recorder)
	for _, ref := range refs {
		added := false
		if rec != nil && rec.Record(ref) {
			added = true
		}
		if r.collector != nil && r.collector.Add(ref) && rec == nil {
			added = true
		}
		if added {
			r.metrics.AssetCollected()
		}
	}
}
