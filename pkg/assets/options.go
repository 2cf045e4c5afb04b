package assets

import (
	"log/slog"

	"github.com/vango-dev/assetref/pkg/telemetry"
)

// DefaultCacheSize is the number of resource roots kept by the resolver.
const DefaultCacheSize = 128

// DefaultAssetAttrs lists the asset-bearing attributes per element tag.
var DefaultAssetAttrs = map[string][]string{
	"link":   {"href"},
	"script": {"src"},
}

type options struct {
	logger     *slog.Logger
	metrics    *telemetry.Metrics
	cache      Cache
	cacheSize  int
	assetAttrs map[string][]string
	validator  Validator
	collector  *AssetSet
}

// Option configures a Resolver, Rewriter, Renderer or Pipeline.
// Options that do not apply to a component are ignored by it.
type Option func(*options)

func buildOptions(opts []Option) options {
	o := options{
		cacheSize:  DefaultCacheSize,
		assetAttrs: DefaultAssetAttrs,
		validator:  ValidateExists,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCache replaces the resolver's resource-root cache (Resolver).
func WithCache(c Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithCacheSize sets the size of the default LRU cache (Resolver).
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithAssetAttrs replaces the asset-bearing tag/attribute table (Rewriter).
//
//	assets.WithAssetAttrs(map[string][]string{
//	    "link":   {"href"},
//	    "script": {"src"},
//	    "img":    {"src"},
//	})
func WithAssetAttrs(attrs map[string][]string) Option {
	return func(o *options) {
		o.assetAttrs = attrs
	}
}

// WithValidator replaces the existence check run on every resolved
// reference (Rewriter). Default: ValidateExists.
func WithValidator(v Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithCollector records every rendered asset into set in addition to the
// strategy's own collection (Renderer).
func WithCollector(set *AssetSet) Option {
	return func(o *options) {
		o.collector = set
	}
}
