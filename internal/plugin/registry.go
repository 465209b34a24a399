package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

// ErrNotFound is returned when no registered plugin matches a lookup.
var ErrNotFound = errors.New("plugin not found")

// Registry holds the plugins a binary ships, keyed by name and version.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]map[string]Plugin)}
}

// Register adds p. Each name may be registered once per version.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	meta := p.Metadata()
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	versions := r.plugins[meta.Name]
	if versions == nil {
		versions = make(map[string]Plugin)
		r.plugins[meta.Name] = versions
	}
	if _, dup := versions[meta.Version]; dup {
		return fmt.Errorf("plugin %s@%s already registered", meta.Name, meta.Version)
	}
	versions[meta.Version] = p
	return nil
}

// Get returns the plugin registered as name at version. An empty version
// selects the highest registered version.
func (r *Registry) Get(name, version string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.plugins[name]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if version == "" {
		ordered := sortedVersions(versions)
		return versions[ordered[len(ordered)-1]], nil
	}
	p, ok := versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, name, version)
	}
	return p, nil
}

// Lookup resolves a plugin reference of the form "name" or "name@version".
func (r *Registry) Lookup(ref string) (Plugin, error) {
	name, version, _ := strings.Cut(ref, "@")
	return r.Get(name, version)
}

// List returns every registered plugin ordered by name, then version.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Plugin
	for _, name := range r.namesLocked() {
		versions := r.plugins[name]
		for _, v := range sortedVersions(versions) {
			out = append(out, versions[v])
		}
	}
	return out
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortedVersions orders versions lowest first by semantic version.
func sortedVersions(versions map[string]Plugin) []string {
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return semver.Compare(out[i], out[j]) < 0 })
	return out
}
