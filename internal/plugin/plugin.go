// Package plugin provides the plugin system for extending docsite render
// passes. A plugin is loaded once per application: Load declares its options
// and subscribes to renderer events and layout hooks.
package plugin

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/site"
	"golang.org/x/mod/semver"
)

// Plugin represents a docsite plugin with metadata and a load step.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type).
	Metadata() PluginMetadata

	// Load declares the plugin's options on app.Options and registers its
	// begin handlers and hooks on app.Renderer. It runs before options are
	// resolved, so it must not read option values.
	Load(app *site.Application) error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the unique plugin identifier used in the "plugin" option (e.g., "plugin-404").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if strings.Contains(m.Name, "@") {
		return fmt.Errorf("plugin name %q must not contain '@'", m.Name)
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !semver.IsValid(m.Version) {
		return fmt.Errorf("plugin version %q is not a semantic version", m.Version)
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}
