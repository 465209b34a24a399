package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/page404"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	run(os.Args[1:], os.Stdout, os.Stderr, os.Exit)
}

// run parses args and executes the selected command. exit receives the
// process exit code on failure.
func run(args []string, stdout, stderr io.Writer, exit func(int)) {
	registry := plugin.NewRegistry()
	global := &commands.Global{
		Logger:   slog.Default(),
		Registry: registry,
		Stdout:   stdout,
		Stderr:   stderr,
	}
	adapter := derrors.NewCLIErrorAdapter(false, nil).WithStderr(stderr).WithExit(exit)

	if err := registry.Register(page404.New()); err != nil {
		adapter.HandleError(derrors.InternalError("failed to register built-in plugins", err))
		return
	}

	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsite"),
		kong.Description("Render markdown documentation into a static site."),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		adapter.HandleError(derrors.InternalError("failed to build command line parser", err))
		return
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		adapter.HandleError(derrors.ValidationFailed("arguments", err.Error()))
		return
	}

	adapter = derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).WithStderr(stderr).WithExit(exit)
	if err := ctx.Run(global, cli); err != nil {
		adapter.HandleError(err)
	}
}
