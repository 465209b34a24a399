package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Out          string        `short:"o" help:"Output directory (overrides the out option)" type:"path"`
	Debounce     time.Duration `help:"Quiet period after the last change before re-rendering" default:"500ms"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Also re-render on this interval (0 disables)" default:"0s"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	runner := build.NewRunner(g.Registry, g.Logger, nil)
	req := build.Request{ConfigPath: root.Config, OutputDir: w.Out}

	// The first pass locates the sources and output. Render errors are
	// reported but do not stop watching, so they can be fixed in place.
	first, err := runner.Run(ctx, req)
	if err != nil {
		if _, statErr := os.Stat(root.Config); statErr != nil {
			return err
		}
		g.Logger.Error("Initial render failed", logfields.Error(err))
	}

	dirs := []string{filepath.Dir(root.Config)}
	if first.EntryPoint != "" {
		dirs = append(dirs, first.EntryPoint)
	}
	var ignore []string
	if first.OutputPath != "" {
		ignore = append(ignore, first.OutputPath)
	}

	req.SkipIfUnchanged = true
	watcher, err := watch.New(watch.Config{
		Dirs:         dirs,
		Ignore:       ignore,
		Debounce:     w.Debounce,
		RebuildEvery: w.RebuildEvery,
		Logger:       g.Logger,
	}, func(ctx context.Context, reason string) error {
		result, err := runner.Run(ctx, req)
		if err != nil {
			return err
		}
		if !result.Skipped {
			g.Logger.Info("Site updated", logfields.PassID(result.PassID), logfields.Pages(len(result.Pages)), "reason", reason)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
