package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/build"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Out         string `short:"o" help:"Output directory (overrides the out option)" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics for the pass to this file" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prom.NewRegistry()
	runner := build.NewRunner(g.Registry, g.Logger, metrics.NewPrometheusRecorder(reg))

	result, err := runner.Run(ctx, build.Request{ConfigPath: root.Config, OutputDir: b.Out})
	if b.MetricsFile != "" {
		if werr := metrics.WriteTextfile(b.MetricsFile, reg); werr != nil {
			g.Logger.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
			if err == nil {
				err = derrors.OutputError("write "+b.MetricsFile, werr)
			}
		}
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(g.Stdout, "Rendered %d pages to %s in %s\n", len(result.Pages), result.OutputPath, result.Duration.Round(1e6))
	return nil
}
