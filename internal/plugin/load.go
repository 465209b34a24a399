package plugin

import (
	"fmt"
	"sort"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// LoadAll loads the named plugins into app in sorted order. A reference is
// either "name", selecting the highest registered version, or
// "name@version". An empty list loads every registered plugin. Unknown
// references and a name listed at two versions are configuration errors; a
// failing Load is reported as a plugin error.
func LoadAll(app *site.Application, registry *Registry, refs []string) error {
	if len(refs) == 0 {
		refs = registry.Names()
	}
	refs = dedupe(refs)

	loaded := make(map[string]string, len(refs))
	for _, ref := range refs {
		p, err := registry.Lookup(ref)
		if err != nil {
			return derrors.ConfigInvalid(fmt.Sprintf("unknown plugin %q", ref)).
				WithContext("plugin", ref)
		}
		meta := p.Metadata()
		if prev, ok := loaded[meta.Name]; ok {
			return derrors.ConfigInvalid(fmt.Sprintf("plugin %q is listed as both %q and %q", meta.Name, prev, ref)).
				WithContext("plugin", meta.Name)
		}
		loaded[meta.Name] = ref

		if err := p.Load(app); err != nil {
			if _, ok := derrors.As(err); ok {
				return err
			}
			return derrors.PluginFailed(meta.Name, NewPluginError(meta.Name, "load", err))
		}
		app.Logger.Debug("Plugin loaded", logfields.Plugin(meta.Name), "version", meta.Version)
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
