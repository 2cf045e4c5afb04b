package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vango-dev/assetref/pkg/assets"
)

// DirPublisher writes assets below a local directory.
type DirPublisher struct {
	dir  string
	opts Options
}

// NewDirPublisher creates a publisher writing below dir.
func NewDirPublisher(dir string, opts Options) *DirPublisher {
	return &DirPublisher{
		dir:  dir,
		opts: opts.withDefaults(),
	}
}

// Dir returns the output directory.
func (p *DirPublisher) Dir() string {
	return p.dir
}

// Publish implements Publisher.
func (p *DirPublisher) Publish(ctx context.Context, refs []assets.AssetReference) (*Result, error) {
	return publish(ctx, "dir", refs, p.opts, p.writeFile)
}

func (p *DirPublisher) writeFile(_ context.Context, name string, data []byte) error {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("refusing to write outside %s: %q", p.dir, name)
	}
	dest := filepath.Join(p.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}

func manifestJSON(m *assets.Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m.All(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
