package config

import (
	"path/filepath"
	"testing"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesReadableStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "docsite.json")
	require.NoError(t, Init(path, false))

	o := New()
	for _, d := range []Declaration{
		{Name: "name", Type: String},
		{Name: "entryPoint", Type: String},
		{Name: "out", Type: String},
		{Name: "hostedBaseUrl", Type: String},
		{Name: "useHostedBaseUrlForAbsoluteLinks", Type: Boolean},
		{Name: "plugin", Type: Array},
		{Name: "page404Content", Type: String},
	} {
		require.NoError(t, o.AddDeclaration(d))
	}
	require.NoError(t, o.ReadFile(path))
	require.NoError(t, o.Resolve())

	hosted, err := o.GetBool("useHostedBaseUrlForAbsoluteLinks")
	require.NoError(t, err)
	assert.True(t, hosted)
	plugins, err := o.GetValue("plugin")
	require.NoError(t, err)
	assert.Equal(t, []string{"plugin-404"}, plugins)
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docsite.json", `{"name":"Mine"}`)

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))

	require.NoError(t, Init(path, true))
}
