package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct{}

func (p *PluginsCmd) Run(g *Global) error {
	host, err := site.NewApplication(g.Logger, nil)
	if err != nil {
		return err
	}
	hostOptions := make(map[string]bool)
	for _, d := range host.Options.Declarations() {
		hostOptions[d.Name] = true
	}

	plugins := g.Registry.List()
	if len(plugins) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No plugins registered")
		return nil
	}
	for _, pl := range plugins {
		if err := describePlugin(g, pl, hostOptions); err != nil {
			return err
		}
	}
	return nil
}

// describePlugin loads pl into a scratch application to list the options it declares.
func describePlugin(g *Global, pl plugin.Plugin, hostOptions map[string]bool) error {
	meta := pl.Metadata()
	_, _ = fmt.Fprintf(g.Stdout, "%s %s (%s)\n", meta.Name, meta.Version, meta.Type)
	if meta.Description != "" {
		_, _ = fmt.Fprintf(g.Stdout, "  %s\n", meta.Description)
	}

	app, err := site.NewApplication(g.Logger, nil)
	if err != nil {
		return err
	}
	if err := pl.Load(app); err != nil {
		return derrors.PluginFailed(meta.Name, plugin.NewPluginError(meta.Name, "load", err))
	}
	for _, d := range app.Options.Declarations() {
		if hostOptions[d.Name] {
			continue
		}
		writeOption(g.Stdout, d)
	}
	return nil
}

func writeOption(w io.Writer, d config.Declaration) {
	_, _ = fmt.Fprintf(w, "  option %s (%s", d.Name, d.Type)
	if d.DefaultValue != nil {
		if encoded, err := json.Marshal(d.DefaultValue); err == nil {
			_, _ = fmt.Fprintf(w, ", default %s", encoded)
		}
	}
	_, _ = fmt.Fprintln(w, ")")
	if d.Help != "" {
		_, _ = fmt.Fprintf(w, "      %s\n", d.Help)
	}
}
