package assets

import (
	"encoding/json"
	"os"
	"sync"
)

// Manifest maps logical asset paths to their published (usually
// fingerprinted) paths:
//
//	{
//	  "pkga/static/site.css": "pkga/static/site.e5f6g7h8.css"
//	}
//
// It is written by the publish step and read by URLStrategy.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
// Use LoadManifest() to create a manifest from a JSON file.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// LoadManifest reads a manifest.json file.
// The manifest file is expected to be a flat JSON object of strings.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]string)
	}

	return &Manifest{entries: entries}, nil
}

// WriteFile writes the manifest as indented JSON.
func (m *Manifest) WriteFile(path string) error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.entries, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Resolve returns the published path for the given logical path.
// If not found, returns the logical path unchanged.
func (m *Manifest) Resolve(logical string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[logical]; ok {
		return resolved
	}
	return logical
}

// Has returns true if the manifest contains the given logical path.
func (m *Manifest) Has(logical string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[logical]
	return ok
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(logical, published string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[logical] = published
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
