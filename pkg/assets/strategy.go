package assets

import (
	"strings"

	"github.com/vango-dev/assetref/pkg/resource"
)

// Strategy turns a resource handle into the string written to the
// attribute when rendering for target.
type Strategy interface {
	CalculatePath(source resource.Handle, target string) (string, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(source resource.Handle, target string) (string, error)

// CalculatePath implements Strategy.
func (f StrategyFunc) CalculatePath(source resource.Handle, target string) (string, error) {
	return f(source, target)
}

// Recorder is implemented by strategies that collect the assets they render.
// Record reports whether the reference was new.
type Recorder interface {
	Record(ref AssetReference) bool
}

// RelativePathStrategy renders resources as paths relative to the target
// document, optionally under a site prefix, and collects every rendered
// asset. One instance can be reused for every page of a build.
type RelativePathStrategy struct {
	sitePrefix string
	collected  *AssetSet
}

// NewRelativePathStrategy creates the default strategy. sitePrefix may be
// empty.
func NewRelativePathStrategy(sitePrefix string) *RelativePathStrategy {
	return &RelativePathStrategy{
		sitePrefix: strings.Trim(sitePrefix, "/"),
		collected:  NewAssetSet(),
	}
}

// SitePrefix returns the configured prefix without surrounding slashes.
func (s *RelativePathStrategy) SitePrefix() string {
	return s.sitePrefix
}

// CalculatePath implements Strategy.
func (s *RelativePathStrategy) CalculatePath(source resource.Handle, target string) (string, error) {
	return RelativePath(source.String(), target, s.sitePrefix)
}

// Record implements Recorder.
func (s *RelativePathStrategy) Record(ref AssetReference) bool {
	return s.collected.Add(ref)
}

// Collected returns the assets rendered so far.
func (s *RelativePathStrategy) Collected() *AssetSet {
	return s.collected
}

// URLStrategy renders resources as absolute URLs below a base, for
// deployments where assets are served from a fixed location or a CDN.
// With a manifest, logical paths are mapped to their fingerprinted names.
type URLStrategy struct {
	base      string
	manifest  *Manifest
	collected *AssetSet
}

// NewURLStrategy creates a URLStrategy. Common bases:
//   - "/static/" - assets served by the same host
//   - "https://cdn.example.com/site/" - assets on a CDN
//   - "" - root-absolute paths ("/pkga/static/x.css")
//
// manifest may be nil.
func NewURLStrategy(base string, manifest *Manifest) *URLStrategy {
	return &URLStrategy{
		base:      base,
		manifest:  manifest,
		collected: NewAssetSet(),
	}
}

// CalculatePath implements Strategy. target is ignored.
func (s *URLStrategy) CalculatePath(source resource.Handle, _ string) (string, error) {
	logical := source.String()
	if err := checkLogical(logical); err != nil {
		return "", err
	}
	resolved := logical
	if s.manifest != nil {
		resolved = s.manifest.Resolve(logical)
	}
	return joinURL(s.base, resolved), nil
}

// Record implements Recorder.
func (s *URLStrategy) Record(ref AssetReference) bool {
	return s.collected.Add(ref)
}

// Collected returns the assets rendered so far.
func (s *URLStrategy) Collected() *AssetSet {
	return s.collected
}

func joinURL(base, p string) string {
	if base == "" {
		return "/" + p
	}
	if strings.HasSuffix(base, "/") {
		return base + p
	}
	return base + "/" + p
}
