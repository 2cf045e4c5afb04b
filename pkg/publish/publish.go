package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/telemetry"
)

// ManifestName is the file name of the fingerprint manifest.
const ManifestName = "manifest.json"

// DefaultConcurrency is the number of assets written in parallel.
const DefaultConcurrency = 8

// Publisher writes collected assets to an output location.
type Publisher interface {
	Publish(ctx context.Context, refs []assets.AssetReference) (*Result, error)
}

// Options configures a publisher.
type Options struct {
	// SitePrefix is the directory assets are written under. It must match
	// the prefix pages were rendered with.
	SitePrefix string

	// Fingerprint adds a content hash to file names and writes a manifest.
	Fingerprint bool

	// Concurrency limits parallel writes. Defaults to DefaultConcurrency.
	Concurrency int

	// OnProgress is called with the logical path of each published asset.
	OnProgress func(logical string)

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics may be nil.
	Metrics *telemetry.Metrics
}

func (o Options) withDefaults() Options {
	o.SitePrefix = strings.Trim(o.SitePrefix, "/")
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Result contains the publish output.
type Result struct {
	// Duration is how long publishing took.
	Duration time.Duration

	// Files is the number of assets written.
	Files int

	// Bytes is the total size of the assets written.
	Bytes int64

	// Manifest maps logical paths to published paths relative to the site
	// prefix. Without fingerprinting every entry maps to itself.
	Manifest *assets.Manifest
}

// writeFunc stores data under name, a slash-separated path below the
// publisher's root.
type writeFunc func(ctx context.Context, name string, data []byte) error

// publish reads every reference and hands it to write. The manifest is
// written last, and only when every asset was written.
func publish(ctx context.Context, kind string, refs []assets.AssetReference, opts Options, write writeFunc) (result *Result, err error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "assetref.Publish",
		attribute.String("assetref.publisher", kind),
		attribute.Int("assetref.assets", len(refs)),
	)
	defer func() {
		telemetry.EndSpan(span, err)
		opts.Metrics.Operation("publish", start, err)
	}()

	manifest := assets.NewManifest()
	var total atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if ref.Source == nil {
				return fmt.Errorf("publish %s: no source", ref.ModulePath)
			}
			data, err := ref.Source.ReadBytes()
			if err != nil {
				return fmt.Errorf("publish %s: %w", ref.ModulePath, err)
			}

			name := ref.ModulePath
			if opts.Fingerprint {
				name = fingerprint(name, data)
			}
			if err := write(gctx, joinPrefix(opts.SitePrefix, name), data); err != nil {
				return fmt.Errorf("publish %s: %w", ref.ModulePath, err)
			}

			manifest.Set(ref.ModulePath, name)
			total.Add(int64(len(data)))
			if opts.OnProgress != nil {
				opts.OnProgress(ref.ModulePath)
			}
			opts.Logger.Debug("published asset", "asset", ref.ModulePath, "name", name, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Fingerprint {
		data, err := manifestJSON(manifest)
		if err != nil {
			return nil, err
		}
		if err := write(ctx, ManifestName, data); err != nil {
			return nil, fmt.Errorf("publish manifest: %w", err)
		}
	}

	result = &Result{
		Duration: time.Since(start),
		Files:    len(refs),
		Bytes:    total.Load(),
		Manifest: manifest,
	}
	opts.Logger.Info("published assets",
		"publisher", kind,
		"files", result.Files,
		"bytes", result.Bytes,
		"duration", result.Duration,
	)
	return result, nil
}

// fingerprint inserts the first 8 hex digits of the SHA-256 of data
// before the extension: "a/site.css" → "a/site.1a2b3c4d.css".
func fingerprint(name string, data []byte) string {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])[:8]

	dir, file := path.Split(name)
	ext := path.Ext(file)
	base := strings.TrimSuffix(file, ext)
	return fmt.Sprintf("%s%s.%s%s", dir, base, hash, ext)
}

func joinPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
