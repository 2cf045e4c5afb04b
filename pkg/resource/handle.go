package resource

import (
	"errors"
	"io/fs"
)

// Handle is an opaque reference to a file-like resource.
//
// String returns the logical path of the resource, never a filesystem path.
// Two handles with the same logical path refer to the same asset, whatever
// loader produced them.
type Handle interface {
	// Exists reports whether the resource is present and is a regular file.
	// A missing resource is reported as false with a nil error.
	Exists() (bool, error)

	// ReadBytes returns the full content of the resource.
	ReadBytes() ([]byte, error)

	// ReadText returns the full content of the resource as a string.
	ReadText() (string, error)

	// String returns the logical path, e.g. "pkga/sub/static/x.css".
	String() string
}

// FSHandle is a Handle backed by a resource root.
// It is immutable once created.
type FSHandle struct {
	root    fs.FS
	name    string
	logical string
}

// NewHandle creates a handle for name inside root.
// name must be a valid fs path relative to root; logical is the path used
// for relative-path arithmetic and deduplication.
func NewHandle(root fs.FS, name, logical string) *FSHandle {
	return &FSHandle{
		root:    root,
		name:    name,
		logical: logical,
	}
}

// Exists implements Handle.
func (h *FSHandle) Exists() (bool, error) {
	if h == nil || h.root == nil || !fs.ValidPath(h.name) {
		return false, nil
	}
	info, err := fs.Stat(h.root, h.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadBytes implements Handle.
func (h *FSHandle) ReadBytes() ([]byte, error) {
	return fs.ReadFile(h.root, h.name)
}

// ReadText implements Handle.
func (h *FSHandle) ReadText() (string, error) {
	data, err := h.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Open opens the underlying file.
func (h *FSHandle) Open() (fs.File, error) {
	return h.root.Open(h.name)
}

// Name returns the path of the resource inside its root.
func (h *FSHandle) Name() string {
	return h.name
}

// String implements Handle.
func (h *FSHandle) String() string {
	if h == nil {
		return ""
	}
	return h.logical
}

// SameLogicalPath reports whether a and b refer to the same logical asset.
func SameLogicalPath(a, b Handle) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}
