package function

import (
	"fmt"
	"strings"
	"sync"
)

// VersionsCompatible reports whether two controller versions may talk to each
// other: a case-insensitive exact match, no semver range logic.
func VersionsCompatible(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Registry is the controller's own compiled-in function catalog. Workers
// report their catalogs over heartbeats; this one is what the controller
// itself recognizes.
type Registry struct {
	version string

	mu    sync.RWMutex
	funcs DescriptionMap
}

// NewRegistry creates a catalog bound to a controller version.
func NewRegistry(version string) *Registry {
	return &Registry{
		version: version,
		funcs:   make(DescriptionMap),
	}
}

// Register adds a description to the catalog and returns its derived ID.
// Functions targeting an incompatible controller version are rejected.
func (r *Registry) Register(d *Description) (string, error) {
	if !VersionsCompatible(d.TargetVersion, r.version) {
		return "", fmt.Errorf("function %s targets version %s, controller is %s",
			d.Name, d.TargetVersion, r.version)
	}

	id := IDFromDescription(d)
	r.mu.Lock()
	r.funcs[id] = d
	r.mu.Unlock()
	return id, nil
}

// Get returns the description registered under id, or nil.
func (r *Registry) Get(id string) *Description {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[id]
}

// Functions returns a copy of the catalog.
func (r *Registry) Functions() DescriptionMap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(DescriptionMap, len(r.funcs))
	for id, d := range r.funcs {
		out[id] = d
	}
	return out
}
