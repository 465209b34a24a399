package page404

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/site"
	"github.com/stretchr/testify/require"
)

// fakeOptions is an OptionReader over a plain map.
type fakeOptions map[string]any

func (f fakeOptions) GetValue(name string) (any, error) {
	v, ok := f[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return v, nil
}

// newSite returns an application with the plugin loaded and values resolved.
func newSite(t *testing.T, values map[string]any) *site.Application {
	t.Helper()
	app, err := site.NewApplication(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)

	registry := plugin.NewRegistry()
	require.NoError(t, registry.Register(New()))
	require.NoError(t, plugin.LoadAll(app, registry, []string{PluginName}))

	for k, v := range values {
		require.NoError(t, app.Options.SetValue(k, v))
	}
	require.NoError(t, app.Options.Resolve())
	return app
}

func hostedValues(extra map[string]any) map[string]any {
	values := map[string]any{
		site.OptionUseHostedBaseURL: true,
		site.OptionHostedBaseURL:    "https://example.com/docs/",
	}
	for k, v := range extra {
		values[k] = v
	}
	return values
}

func sampleProject(t *testing.T) *site.Project {
	t.Helper()
	return projectFrom(t, map[string]string{
		"README.md":      "# Welcome\n\nStart with [setup](guide/setup.md).\n",
		"guide/setup.md": "# Setup\n",
	})
}

func projectFrom(t *testing.T, files map[string]string) *site.Project {
	t.Helper()
	src := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	project, err := site.LoadProject("Docs", src)
	require.NoError(t, err)
	return project
}

func readPage(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
