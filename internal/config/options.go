// Package config holds the option store shared by the site host and its
// plugins. Options are declared first, read from a settings file, then
// resolved once: resolution rejects unknown keys and mismatched types, so
// readers of a resolved store only ever see declared, well-typed values.
package config

import (
	"fmt"
	"sort"
	"sync"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// Options is the option store for one render pass.
type Options struct {
	mu       sync.RWMutex
	decls    map[string]Declaration
	raw      map[string]any
	values   map[string]any
	resolved bool
}

// New creates an empty option store.
func New() *Options {
	return &Options{
		decls: make(map[string]Declaration),
		raw:   make(map[string]any),
	}
}

// AddDeclaration registers an option. Declarations must happen before Resolve.
func (o *Options) AddDeclaration(d Declaration) error {
	if err := d.Validate(); err != nil {
		return derrors.InternalError("invalid option declaration", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.resolved {
		return derrors.InternalError(fmt.Sprintf("cannot declare option %s after options were resolved", d.Name), nil)
	}
	if _, exists := o.decls[d.Name]; exists {
		return derrors.InternalError(fmt.Sprintf("option %s declared twice", d.Name), nil)
	}
	o.decls[d.Name] = d
	return nil
}

// Declarations returns all declarations sorted by name.
func (o *Options) Declarations() []Declaration {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]Declaration, 0, len(o.decls))
	for _, d := range o.decls {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetValue stores a raw value for name. Values are checked at Resolve.
func (o *Options) SetValue(name string, value any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.resolved {
		return derrors.InternalError(fmt.Sprintf("cannot set option %s after options were resolved", name), nil)
	}
	o.raw[name] = value
	return nil
}

// Raw returns the unresolved value for name as read from the settings file.
// The host uses it for options needed before plugins load (the plugin list).
func (o *Options) Raw(name string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.raw[name]
	return v, ok
}

// Resolve validates raw values against the declarations and fixes the
// resolved values, expanding ${VAR} references unless the declaration is
// Verbatim. It fails on unknown options and type mismatches.
func (o *Options) Resolve() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.resolved {
		return nil
	}

	unknown := make([]string, 0)
	for name := range o.raw {
		if _, ok := o.decls[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return derrors.ConfigInvalid(fmt.Sprintf("unknown option %q", unknown[0])).
			WithContext("unknown", unknown)
	}

	if err := validateAgainstSchema(o.decls, o.raw); err != nil {
		return err
	}

	values := make(map[string]any, len(o.decls))
	for name, d := range o.decls {
		if v, ok := o.raw[name]; ok {
			if !d.Verbatim {
				v = expandValue(v)
			}
			values[name] = normalize(v)
			continue
		}
		values[name] = d.defaultValue()
	}
	o.values = values
	o.resolved = true
	return nil
}

// GetValue returns the resolved value of a declared option.
func (o *Options) GetValue(name string) (any, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.resolved {
		return nil, derrors.InternalError(fmt.Sprintf("option %s read before options were resolved", name), nil)
	}
	v, ok := o.values[name]
	if !ok {
		return nil, derrors.InternalError(fmt.Sprintf("unknown option %s", name), nil)
	}
	return v, nil
}

// GetString returns a resolved string option.
func (o *Options) GetString(name string) (string, error) {
	v, err := o.GetValue(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", derrors.InternalError(fmt.Sprintf("option %s is not a string", name), nil)
	}
	return s, nil
}

// GetBool returns a resolved boolean option.
func (o *Options) GetBool(name string) (bool, error) {
	v, err := o.GetValue(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, derrors.InternalError(fmt.Sprintf("option %s is not a boolean", name), nil)
	}
	return b, nil
}

// snapshot returns a copy of the resolved values.
func (o *Options) snapshot() (map[string]any, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.resolved {
		return nil, derrors.InternalError("options not resolved", nil)
	}
	out := make(map[string]any, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out, nil
}
