// Package watch rebuilds a site when its settings or sources change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Reasons passed to BuildFunc.
const (
	ReasonChange   = "change"
	ReasonSchedule = "schedule"
)

// BuildFunc runs one render pass. Errors are logged and watching continues.
type BuildFunc func(ctx context.Context, reason string) error

// Config configures a Watcher.
type Config struct {
	// Dirs are watched recursively. Dot directories are skipped.
	Dirs []string
	// Ignore lists directories whose events never trigger a build (the output).
	Ignore []string
	// Debounce is the quiet window after the last change before building.
	Debounce time.Duration
	// RebuildEvery triggers periodic rebuilds when positive.
	RebuildEvery time.Duration
	Logger       *slog.Logger
}

// Watcher monitors source and settings files and triggers debounced rebuilds.
type Watcher struct {
	cfg     Config
	build   BuildFunc
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	ignore  []string

	scheduled chan struct{}
	ready     chan struct{}
}

// New creates a watcher. Call Run to start it.
func New(cfg Config, build BuildFunc) (*Watcher, error) {
	if build == nil {
		return nil, derrors.InternalError("watch: build function is required", nil)
	}
	if len(cfg.Dirs) == 0 {
		return nil, derrors.ValidationFailed("dirs", "at least one directory must be watched")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ignore := make([]string, 0, len(cfg.Ignore))
	for _, dir := range cfg.Ignore {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to resolve ignored path")
		}
		ignore = append(ignore, abs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to create file watcher")
	}

	return &Watcher{
		cfg:       cfg,
		build:     build,
		logger:    cfg.Logger,
		watcher:   fw,
		ignore:    ignore,
		scheduled: make(chan struct{}, 1),
		ready:     make(chan struct{}),
	}, nil
}

// Ready is closed once all directories are watched and the scheduler runs.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. Builds run on the calling goroutine, one
// at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	for _, dir := range w.cfg.Dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}

	if w.cfg.RebuildEvery > 0 {
		scheduler, err := w.startScheduler()
		if err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				w.logger.Warn("Failed to stop rebuild scheduler", logfields.Error(err))
			}
		}()
	}

	w.logger.Info("Watching for changes", "dirs", w.cfg.Dirs, "debounce", w.cfg.Debounce)
	close(w.ready)

	quiet := time.NewTimer(time.Hour)
	stopTimer(quiet)
	var quietC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			stopTimer(quiet)
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			stopTimer(quiet)
			quiet.Reset(w.cfg.Debounce)
			quietC = quiet.C

		case <-quietC:
			quietC = nil
			w.runBuild(ctx, ReasonChange)

		case <-w.scheduled:
			w.runBuild(ctx, ReasonSchedule)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) runBuild(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	w.logger.Info("Rebuilding", "reason", reason)
	if err := w.build(ctx, reason); err != nil {
		w.logger.Error("Rebuild failed", "reason", reason, logfields.Error(err))
	}
}

func (w *Watcher) startScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, derrors.InternalError("failed to create rebuild scheduler", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.cfg.RebuildEvery),
		gocron.NewTask(w.enqueueScheduled),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, derrors.ConfigInvalid(fmt.Sprintf("invalid rebuild interval %s: %v", w.cfg.RebuildEvery, err))
	}
	s.Start()
	return s, nil
}

// enqueueScheduled is called by gocron; a pending scheduled build absorbs
// further ticks.
func (w *Watcher) enqueueScheduled() {
	select {
	case w.scheduled <- struct{}{}:
	default:
	}
}

// addTree watches dir and every non-dot directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to scan watched directory").
				WithContext("path", p)
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.ignored(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to watch directory").
				WithContext("path", p)
		}
		return nil
	})
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") && base != ".env" {
		return false
	}
	return !w.ignored(event.Name)
}

func (w *Watcher) ignored(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
