// Package site is the documentation host: it discovers markdown sources,
// builds a render plan of URL mappings and renders it to static HTML.
// Plugins extend a pass through begin handlers (which may append to the plan)
// and layout hooks (which contribute markup to each page).
package site

import (
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Options declared by the host.
const (
	OptionName             = "name"
	OptionEntryPoint       = "entryPoint"
	OptionOut              = "out"
	OptionCleanOutputDir   = "cleanOutputDir"
	OptionHostedBaseURL    = "hostedBaseUrl"
	OptionUseHostedBaseURL = "useHostedBaseUrlForAbsoluteLinks"
	OptionPlugin           = "plugin"
)

var hostDeclarations = []config.Declaration{
	{Name: OptionName, Help: "Site name shown in the header and page titles.", Type: config.String, DefaultValue: "Documentation"},
	{Name: OptionEntryPoint, Help: "Directory containing the markdown sources.", Type: config.String, DefaultValue: "."},
	{Name: OptionOut, Help: "Output directory.", Type: config.String, DefaultValue: "docs"},
	{Name: OptionCleanOutputDir, Help: "Remove the output directory before rendering.", Type: config.Boolean, DefaultValue: true},
	{Name: OptionHostedBaseURL, Help: "Base URL the site is served from.", Type: config.String, DefaultValue: ""},
	{Name: OptionUseHostedBaseURL, Help: "Rewrite relative links as absolute links against hostedBaseUrl.", Type: config.Boolean, DefaultValue: false},
	{Name: OptionPlugin, Help: "Plugins to load. All registered plugins load when empty.", Type: config.Array},
}

// Application is the handle passed to plugins at load time.
type Application struct {
	Options  *config.Options
	Renderer *Renderer
	Logger   *slog.Logger
}

// NewApplication creates an application with the host options declared.
func NewApplication(logger *slog.Logger, recorder metrics.Recorder) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := config.New()
	for _, d := range hostDeclarations {
		if err := opts.AddDeclaration(d); err != nil {
			return nil, err
		}
	}
	return &Application{
		Options:  opts,
		Renderer: NewRenderer(opts, logger, recorder),
		Logger:   logger,
	}, nil
}
