package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrModuleNotFound is returned by loaders for unknown module or package names.
var ErrModuleNotFound = errors.New("module not found")

// Loader returns the resource root for a module or package name.
// Implementations return an error wrapping ErrModuleNotFound when the name
// is unknown.
type Loader interface {
	Root(name string) (fs.FS, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (fs.FS, error)

// Root implements Loader.
func (f LoaderFunc) Root(name string) (fs.FS, error) {
	return f(name)
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrModuleNotFound, name)
}

// validModuleName reports whether name can be used as a module key.
func validModuleName(name string) bool {
	return name != "" && name != "." && fs.ValidPath(name)
}

// Registry is an in-memory Loader. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	roots map[string]fs.FS
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		roots: make(map[string]fs.FS),
	}
}

// Register sets the resource root for name, replacing any previous root.
func (r *Registry) Register(name string, root fs.FS) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roots[name] = root
}

// RegisterSub registers the subtree dir of root under name. This is the
// usual shape for an embed.FS declared as "//go:embed static" where the
// module root should be the package directory itself.
func (r *Registry) RegisterSub(name string, root fs.FS, dir string) error {
	sub, err := fs.Sub(root, dir)
	if err != nil {
		return err
	}
	r.Register(name, sub)
	return nil
}

// Root implements Loader.
func (r *Registry) Root(name string) (fs.FS, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	root, ok := r.roots[name]
	if !ok {
		return nil, notFound(name)
	}
	return root, nil
}

// Modules returns the registered names in sorted order.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.roots))
	for name := range r.roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DirLoader loads module roots from a directory tree: module "a/b" is the
// directory Base/a/b.
type DirLoader struct {
	Base string
}

// NewDirLoader creates a DirLoader rooted at base.
func NewDirLoader(base string) *DirLoader {
	return &DirLoader{Base: base}
}

// Root implements Loader.
func (d *DirLoader) Root(name string) (fs.FS, error) {
	if !validModuleName(name) {
		return nil, notFound(name)
	}
	dir := filepath.Join(d.Base, filepath.FromSlash(name))
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(name)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, notFound(name)
	}
	return os.DirFS(dir), nil
}

// Chain tries each loader in order and returns the first root found.
type Chain []Loader

// Root implements Loader.
func (c Chain) Root(name string) (fs.FS, error) {
	for _, l := range c {
		root, err := l.Root(name)
		if err == nil {
			return root, nil
		}
		if !errors.Is(err, ErrModuleNotFound) {
			return nil, err
		}
	}
	return nil, notFound(name)
}
