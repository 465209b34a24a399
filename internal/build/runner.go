package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Runner executes render passes. A Runner remembers the signature of its last
// successful pass, so one Runner should serve one site.
type Runner struct {
	registry *plugin.Registry
	logger   *slog.Logger
	recorder metrics.Recorder

	mu   sync.Mutex
	last Signature
}

// NewRunner creates a runner loading plugins from registry.
func NewRunner(registry *plugin.Registry, logger *slog.Logger, recorder metrics.Recorder) *Runner {
	if registry == nil {
		registry = plugin.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Runner{registry: registry, logger: logger, recorder: recorder}
}

// pass holds the resolved inputs of one render pass.
type pass struct {
	app        *site.Application
	name       string
	entryPoint string
	outDir     string
}

// Run executes one render pass. Only one pass runs at a time per Runner.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.run(ctx, req)
	if err != nil {
		r.logger.Debug("Render pass failed",
			"status", result.Status,
			"category", derrors.GetCategory(err),
			logfields.Error(err))
	}
	return result, err
}

func (r *Runner) run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{StartTime: time.Now()}

	p, err := r.prepare(req)
	if err != nil {
		r.recorder.IncPassOutcome(metrics.OutcomeFailed)
		return result.finish(StatusFailed), err
	}
	result.EntryPoint = p.entryPoint
	result.OutputPath = p.outDir

	sig, err := r.signature(p)
	if err != nil {
		r.recorder.IncPassOutcome(metrics.OutcomeFailed)
		return result.finish(StatusFailed), err
	}
	result.Signature = sig

	if req.SkipIfUnchanged && !r.last.IsZero() && sig == r.last && outputExists(p.outDir) {
		r.logger.Info("Render pass skipped - no changes detected", logfields.OutputDir(p.outDir))
		r.recorder.IncPassOutcome(metrics.OutcomeSkipped)
		result.Skipped = true
		result.SkipReason = "no_changes"
		return result.finish(StatusSkipped), nil
	}

	project, err := site.LoadProject(p.name, p.entryPoint, p.outDir)
	if err != nil {
		r.recorder.IncPassOutcome(metrics.OutcomeFailed)
		return result.finish(StatusFailed), err
	}

	report, err := p.app.Renderer.Render(ctx, project, p.outDir)
	if report != nil {
		result.PassID = report.PassID
		result.Pages = report.Pages
	}
	if err != nil {
		if ctx.Err() != nil {
			return result.finish(StatusCancelled), err
		}
		return result.finish(StatusFailed), err
	}

	r.last = sig
	return result.finish(StatusSuccess), nil
}

// prepare reads the settings file, loads plugins and resolves the options.
func (r *Runner) prepare(req Request) (*pass, error) {
	app, err := site.NewApplication(r.logger, r.recorder)
	if err != nil {
		return nil, err
	}
	if err := app.Options.ReadFile(req.ConfigPath); err != nil {
		return nil, err
	}

	names, err := pluginNames(app)
	if err != nil {
		return nil, err
	}
	if err := plugin.LoadAll(app, r.registry, names); err != nil {
		return nil, err
	}

	if req.OutputDir != "" {
		if err := app.Options.SetValue(site.OptionOut, req.OutputDir); err != nil {
			return nil, err
		}
	}
	if err := app.Options.Resolve(); err != nil {
		return nil, err
	}

	name, err := app.Options.GetString(site.OptionName)
	if err != nil {
		return nil, err
	}
	entry, err := app.Options.GetString(site.OptionEntryPoint)
	if err != nil {
		return nil, err
	}
	out, err := app.Options.GetString(site.OptionOut)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(req.ConfigPath)
	outBase := base
	if req.OutputDir != "" {
		outBase = "."
	}
	return &pass{
		app:        app,
		name:       name,
		entryPoint: resolvePath(base, entry),
		outDir:     resolvePath(outBase, out),
	}, nil
}

func (r *Runner) signature(p *pass) (Signature, error) {
	digest, err := p.app.Options.Digest()
	if err != nil {
		return Signature{}, err
	}
	sources, err := treeHash(p.entryPoint, p.outDir)
	if err != nil {
		return Signature{}, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to hash sources").
			WithContext("path", p.entryPoint)
	}
	return Signature{Options: digest, Sources: sources}, nil
}

// pluginNames reads the plugin list before resolution; plugins must load
// first so their options are declared.
func pluginNames(app *site.Application) ([]string, error) {
	raw, ok := app.Options.Raw(site.OptionPlugin)
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []string:
		names := make([]string, len(v))
		for i, s := range v {
			names[i] = config.ExpandEnv(s)
		}
		return names, nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, derrors.ConfigInvalid(fmt.Sprintf("option %s must be of type array of strings, got %v", site.OptionPlugin, raw))
			}
			names = append(names, config.ExpandEnv(s))
		}
		return names, nil
	default:
		return nil, derrors.ConfigInvalid(fmt.Sprintf("option %s must be of type array, got %v", site.OptionPlugin, raw))
	}
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func outputExists(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
