// Package commands implements the docsite command line.
package commands

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/plugin"
)

// Global carries state shared by all commands.
type Global struct {
	Logger   *slog.Logger
	Registry *plugin.Registry
	Stdout   io.Writer
	Stderr   io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.json" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Render the documentation site"`
	Watch   WatchCmd   `cmd:"" help:"Render the site and re-render on changes"`
	Init    InitCmd    `cmd:"" help:"Write a starter configuration file"`
	Plugins PluginsCmd `cmd:"" help:"List built-in plugins and the options they declare"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}
