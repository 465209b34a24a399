package build

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/page404"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func newRunner(t *testing.T, recorder metrics.Recorder) *Runner {
	t.Helper()
	registry := plugin.NewRegistry()
	require.NoError(t, registry.Register(page404.New()))
	return NewRunner(registry, slog.New(slog.NewTextHandler(io.Discard, nil)), recorder)
}

// newSiteDir lays out a site with its settings file and returns the settings path.
func newSiteDir(t *testing.T, settings string) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"docsite.json":        settings,
		"content/README.md":   "# Home\n",
		"content/guide/a.md":  "# A\n",
		"content/.git/config": "ignored",
	})
	return filepath.Join(dir, "docsite.json")
}

const hostedSettings = `{
	"name": "Docs",
	"entryPoint": "content",
	"out": "public",
	"hostedBaseUrl": "https://example.com/",
	"useHostedBaseUrlForAbsoluteLinks": true,
	"plugin": ["plugin-404"],
	"page404Content": "<p>gone</p>"
}`

func TestRunRendersSite(t *testing.T) {
	cfgPath := newSiteDir(t, hostedSettings)

	result, err := newRunner(t, nil).Run(context.Background(), Request{ConfigPath: cfgPath})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "public"), result.OutputPath)
	assert.Equal(t, []string{"index.html", "guide/a.html", "404.html"}, result.Pages)
	assert.NotEmpty(t, result.PassID)
	assert.False(t, result.Signature.IsZero())

	data, err := os.ReadFile(filepath.Join(result.OutputPath, "404.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div class="404-content"><p>gone</p></div>`)
}

func TestRunExpandsEnvOutsideNotFoundContent(t *testing.T) {
	t.Setenv("DOCSITE_TEST_SITE", "Team \"Docs\"")
	cfgPath := newSiteDir(t, `{
	"name": "${DOCSITE_TEST_SITE}",
	"entryPoint": "content",
	"hostedBaseUrl": "https://example.com/",
	"useHostedBaseUrlForAbsoluteLinks": true,
	"plugin": ["plugin-404"],
	"page404Content": "<p>${DOCSITE_TEST_SITE}</p>"
}`)

	result, err := newRunner(t, nil).Run(context.Background(), Request{ConfigPath: cfgPath})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.OutputPath, "404.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div class="404-content"><p>${DOCSITE_TEST_SITE}</p></div>`)
	assert.Contains(t, string(data), `Team &#34;Docs&#34;`)
}

func TestRunOutputOverride(t *testing.T) {
	cfgPath := newSiteDir(t, hostedSettings)
	out := filepath.Join(t.TempDir(), "override")

	result, err := newRunner(t, nil).Run(context.Background(), Request{ConfigPath: cfgPath, OutputDir: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)
	assert.FileExists(t, filepath.Join(out, "404.html"))
}

func TestRunSkipsUnchanged(t *testing.T) {
	recorder := &outcomeRecorder{}
	runner := newRunner(t, recorder)
	cfgPath := newSiteDir(t, hostedSettings)
	req := Request{ConfigPath: cfgPath, SkipIfUnchanged: true}

	first, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, first.Status)

	second, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, second.Status)
	assert.True(t, second.Skipped)
	assert.Equal(t, "no_changes", second.SkipReason)
	assert.Equal(t, first.Signature, second.Signature)
	assert.Equal(t, map[metrics.PassOutcome]int{metrics.OutcomeSuccess: 1, metrics.OutcomeSkipped: 1}, recorder.outcomes)

	writeTree(t, filepath.Dir(cfgPath), map[string]string{"content/guide/b.md": "# B\n"})
	third, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, third.Status)
	assert.NotEqual(t, first.Signature.Sources, third.Signature.Sources)
	assert.Equal(t, first.Signature.Options, third.Signature.Options)

	require.NoError(t, os.RemoveAll(third.OutputPath))
	fourth, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, fourth.Status, "a missing output forces a rebuild")
}

func TestRunSignatureIgnoresOutputAndDotDirs(t *testing.T) {
	cfgPath := newSiteDir(t, `{"entryPoint": ".", "out": "public", "hostedBaseUrl": "https://example.com/", "useHostedBaseUrlForAbsoluteLinks": true}`)
	runner := newRunner(t, nil)
	req := Request{ConfigPath: cfgPath, SkipIfUnchanged: true}

	first, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, first.Status)

	writeTree(t, filepath.Dir(cfgPath), map[string]string{".cache/x": "1"})
	second, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, second.Status)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		category derrors.ErrorCategory
		message  string
	}{
		{
			name:     "absolute links disabled",
			settings: `{"entryPoint": "content", "plugin": ["plugin-404"]}`,
			category: derrors.CategoryConfig,
			message:  `plugin-404 requires setting '"useHostedBaseUrlForAbsoluteLinks": true' in the configuration file`,
		},
		{
			name:     "unknown plugin",
			settings: `{"plugin": ["plugin-sitemap"]}`,
			category: derrors.CategoryConfig,
			message:  `unknown plugin "plugin-sitemap"`,
		},
		{
			name:     "plugin list with a number",
			settings: `{"plugin": ["plugin-404", 3]}`,
			category: derrors.CategoryConfig,
			message:  "option plugin must be of type array of strings",
		},
		{
			name:     "wrong option type",
			settings: `{"entryPoint": "content", "page404Content": 42}`,
			category: derrors.CategoryConfig,
			message:  "option page404Content must be of type string, got 42",
		},
		{
			name:     "unknown option",
			settings: `{"page404Contnet": "x"}`,
			category: derrors.CategoryConfig,
			message:  `unknown option "page404Contnet"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := newSiteDir(t, tt.settings)
			result, err := newRunner(t, nil).Run(context.Background(), Request{ConfigPath: cfgPath})
			require.Error(t, err)
			assert.Equal(t, StatusFailed, result.Status)
			assert.True(t, derrors.IsCategory(err, tt.category), "category of %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestRunMissingConfig(t *testing.T) {
	_, err := newRunner(t, nil).Run(context.Background(), Request{ConfigPath: filepath.Join(t.TempDir(), "docsite.json")})
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRunner(t, nil).Run(ctx, Request{ConfigPath: newSiteDir(t, hostedSettings)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusCancelled, result.Status)
}

// outcomeRecorder counts pass outcomes.
type outcomeRecorder struct {
	metrics.NoopRecorder
	outcomes map[metrics.PassOutcome]int
}

func (r *outcomeRecorder) IncPassOutcome(o metrics.PassOutcome) {
	if r.outcomes == nil {
		r.outcomes = make(map[metrics.PassOutcome]int)
	}
	r.outcomes[o]++
}
