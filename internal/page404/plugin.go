package page404

import (
	"fmt"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const (
	// PluginName is the name used in the "plugin" option.
	PluginName = "plugin-404"
	// PluginVersion is the plugin's semantic version.
	PluginVersion = "v1.0.0"
)

// Plugin adds the 404 page.
type Plugin struct{}

var _ plugin.Plugin = (*Plugin)(nil)

// New creates the plugin.
func New() *Plugin {
	return &Plugin{}
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        PluginName,
		Version:     PluginVersion,
		Type:        plugin.PluginTypeRenderer,
		Description: "Adds a noindex 404.html page built from the index page",
	}
}

// Load declares page404Content and subscribes to the renderer. Configuration
// is read again at the start of every pass.
func (p *Plugin) Load(app *site.Application) error {
	if err := app.Options.AddDeclaration(contentDeclaration()); err != nil {
		return err
	}

	logger := app.Logger.With(logfields.Plugin(PluginName))
	app.Renderer.OnBegin(PluginName, func(event *site.BeginEvent) error {
		cfg, err := ResolveConfig(app.Options)
		if err != nil {
			return err
		}
		if err := AddNotFoundPage(event, cfg.Content); err != nil {
			return err
		}
		logger.Debug("Added 404 page", logfields.PassID(event.PassID), logfields.PageURL(NotFoundURL))

		if !cfg.UseHostedBaseURL {
			return absoluteLinksRequiredError()
		}
		return nil
	})
	app.Renderer.Hooks().On(site.HookHeadEnd, NoIndexHead)
	return nil
}

func absoluteLinksRequiredError() error {
	msg := fmt.Sprintf(`%s requires setting '"%s": true' in the configuration file`, PluginName, site.OptionUseHostedBaseURL)
	return derrors.Wrap(ErrAbsoluteLinksRequired, derrors.CategoryConfig, derrors.SeverityFatal, msg).
		WithContext("plugin", PluginName).
		WithContext("option", site.OptionUseHostedBaseURL)
}
