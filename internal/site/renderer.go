package site

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markup"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"github.com/google/uuid"
)

//go:embed assets/style.css
var assets embed.FS

// Report summarizes a completed render pass.
type Report struct {
	PassID    string
	OutputDir string
	Pages     []string
	Duration  time.Duration
}

// Renderer runs render passes. Begin handlers and hooks are registered by
// plugins at load time; a pass fires the begin handlers once and then renders
// each URL mapping in order on the calling goroutine.
type Renderer struct {
	options  *config.Options
	logger   *slog.Logger
	recorder metrics.Recorder
	hooks    *Hooks

	mu    sync.RWMutex
	begin []beginSubscription

	newPassID func() string
}

// NewRenderer creates a renderer reading its settings from options.
func NewRenderer(options *config.Options, logger *slog.Logger, recorder metrics.Recorder) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Renderer{
		options:   options,
		logger:    logger,
		recorder:  recorder,
		hooks:     NewHooks(),
		newPassID: uuid.NewString,
	}
}

// OnBegin registers a handler fired once per pass before any page renders.
// owner names the registering plugin in error reports.
func (r *Renderer) OnBegin(owner string, handler BeginHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begin = append(r.begin, beginSubscription{owner: owner, handler: handler})
}

// Hooks returns the layout hooks.
func (r *Renderer) Hooks() *Hooks {
	return r.hooks
}

type renderSettings struct {
	clean      bool
	hostedBase *url.URL
}

func (r *Renderer) settings() (renderSettings, error) {
	var s renderSettings
	var err error
	if s.clean, err = r.options.GetBool(OptionCleanOutputDir); err != nil {
		return s, err
	}
	useHosted, err := r.options.GetBool(OptionUseHostedBaseURL)
	if err != nil {
		return s, err
	}
	if !useHosted {
		return s, nil
	}
	raw, err := r.options.GetString(OptionHostedBaseURL)
	if err != nil {
		return s, err
	}
	if raw == "" {
		return s, derrors.ConfigInvalid(fmt.Sprintf("%q requires %q to be set", OptionUseHostedBaseURL, OptionHostedBaseURL))
	}
	if s.hostedBase, err = parseHostedBaseURL(raw); err != nil {
		return s, derrors.ConfigInvalid(fmt.Sprintf("invalid %s: %v", OptionHostedBaseURL, err))
	}
	return s, nil
}

// Render runs one render pass of project into outDir.
func (r *Renderer) Render(ctx context.Context, project *Project, outDir string) (*Report, error) {
	start := time.Now()
	report, err := r.render(ctx, project, outDir)
	r.recorder.ObservePassDuration(time.Since(start))

	switch {
	case err == nil:
		r.recorder.IncPassOutcome(metrics.OutcomeSuccess)
	case ctx.Err() != nil:
		r.recorder.IncPassOutcome(metrics.OutcomeCanceled)
	default:
		r.recorder.IncPassOutcome(metrics.OutcomeFailed)
	}
	if report != nil {
		report.Duration = time.Since(start)
	}
	return report, err
}

func (r *Renderer) render(ctx context.Context, project *Project, outDir string) (*Report, error) {
	settings, err := r.settings()
	if err != nil {
		return nil, err
	}

	passID := r.newPassID()
	log := r.logger.With(logfields.PassID(passID))
	event := &BeginEvent{
		PassID:    passID,
		Project:   project,
		OutputDir: outDir,
		URLs:      project.URLMappings(),
	}

	r.mu.RLock()
	subs := append([]beginSubscription(nil), r.begin...)
	r.mu.RUnlock()
	for _, sub := range subs {
		if err := sub.handler(event); err != nil {
			log.Debug("Begin handler failed", logfields.Plugin(sub.owner), logfields.Error(err))
			if _, ok := derrors.As(err); ok {
				return nil, err
			}
			return nil, derrors.PluginFailed(sub.owner, err)
		}
	}
	if event.URLs == nil {
		return nil, derrors.PluginFailed("renderer", fmt.Errorf("begin handlers removed the URL mappings"))
	}
	r.recorder.SetURLMappings(event.URLs.Len())

	if err := prepareOutputDir(outDir, project.Root, settings.clean); err != nil {
		return nil, err
	}

	report := &Report{PassID: passID, OutputDir: outDir}
	for _, mapping := range event.URLs.All() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := r.renderPage(passID, project.Name, settings, mapping, outDir); err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, mapping.URL)
		r.recorder.IncPagesWritten(1)
		log.Debug("Page written", logfields.PageURL(mapping.URL))
	}

	if err := writeAssets(outDir); err != nil {
		return report, err
	}

	log.Info("Render pass complete", logfields.OutputDir(outDir), logfields.Pages(len(report.Pages)))
	return report, nil
}

func (r *Renderer) renderPage(passID, siteName string, settings renderSettings, mapping *URLMapping, outDir string) error {
	body, err := mapping.Render(mapping.Model)
	if err != nil {
		return derrors.RenderFailed(mapping.URL, err)
	}

	rc := &RenderContext{
		PassID:   passID,
		SiteName: siteName,
		Page:     &PageEvent{URL: mapping.URL, Model: mapping.Model},
		Options:  r.options,
	}
	doc := composePage(r.hooks, rc, body)
	if settings.hostedBase != nil {
		absolutizeLinks(doc, settings.hostedBase, mapping.URL)
	}

	data, err := markup.RenderDocument(doc)
	if err != nil {
		return derrors.RenderFailed(mapping.URL, err)
	}
	if err := writeFileAtomic(filepath.Join(outDir, filepath.FromSlash(mapping.URL)), data); err != nil {
		return derrors.OutputError("write "+mapping.URL, err)
	}
	return nil
}

func writeAssets(outDir string) error {
	data, err := assets.ReadFile(StylesheetPath)
	if err != nil {
		return derrors.InternalError("read embedded stylesheet", err)
	}
	if err := writeFileAtomic(filepath.Join(outDir, filepath.FromSlash(StylesheetPath)), data); err != nil {
		return derrors.OutputError("write "+StylesheetPath, err)
	}
	return nil
}
