package assets

import (
	"sync"

	"github.com/vango-dev/assetref/pkg/resource"
)

// AssetReference pairs a rendered resource with its logical path.
// References are identified by ModulePath alone.
type AssetReference struct {
	Source     resource.Handle
	ModulePath string
}

// NewAssetReference creates a reference for h.
func NewAssetReference(h resource.Handle) AssetReference {
	return AssetReference{Source: h, ModulePath: h.String()}
}

// AssetSet is a set of asset references deduplicated by logical path.
// It keeps first-insertion order and is safe for concurrent use, so one set
// can accumulate the assets of a whole site build.
type AssetSet struct {
	mu    sync.Mutex
	refs  map[string]AssetReference
	order []string
}

// NewAssetSet creates an empty set.
func NewAssetSet() *AssetSet {
	return &AssetSet{
		refs: make(map[string]AssetReference),
	}
}

// Add inserts ref and reports whether its logical path was new.
// A reference whose path is already present is ignored.
func (s *AssetSet) Add(ref AssetReference) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refs[ref.ModulePath]; ok {
		return false
	}
	s.refs[ref.ModulePath] = ref
	s.order = append(s.order, ref.ModulePath)
	return true
}

// Has reports whether the set contains modulePath.
func (s *AssetSet) Has(modulePath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.refs[modulePath]
	return ok
}

// Get returns the reference stored for modulePath.
func (s *AssetSet) Get(modulePath string) (AssetReference, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.refs[modulePath]
	return ref, ok
}

// Len returns the number of distinct assets.
func (s *AssetSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.order)
}

// All returns a copy of the references in insertion order.
func (s *AssetSet) All() []AssetReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AssetReference, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.refs[p])
	}
	return out
}

// Reset empties the set.
func (s *AssetSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs = make(map[string]AssetReference)
	s.order = nil
}
