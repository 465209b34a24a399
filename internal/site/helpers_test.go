package site

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTree creates files below dir from a path → content map.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

// newTestApp returns a resolved application with the given option values.
func newTestApp(t *testing.T, values map[string]any) *Application {
	t.Helper()
	app, err := NewApplication(discardLogger(), nil)
	require.NoError(t, err)
	for k, v := range values {
		require.NoError(t, app.Options.SetValue(k, v))
	}
	require.NoError(t, app.Options.Resolve())
	app.Renderer.newPassID = func() string { return "pass-test" }
	return app
}

func readOutput(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
