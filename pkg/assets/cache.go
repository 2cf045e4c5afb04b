package assets

import (
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vango-dev/assetref/pkg/telemetry"
)

// Cache stores resource roots by module name. Implementations must be safe
// for concurrent use. *lru.Cache[string, fs.FS] and the expirable LRU from
// github.com/hashicorp/golang-lru/v2 satisfy it.
type Cache interface {
	Get(module string) (fs.FS, bool)
	Add(module string, root fs.FS) bool
}

// NewLRUCache creates a bounded LRU cache. Evictions are counted in m,
// which may be nil.
func NewLRUCache(size int, m *telemetry.Metrics) (Cache, error) {
	c, err := lru.NewWithEvict[string, fs.FS](size, func(string, fs.FS) {
		m.CacheEvicted()
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
