package config

import (
	"os"
	"path/filepath"
	"testing"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Options {
	t.Helper()
	o := New()
	require.NoError(t, o.AddDeclaration(Declaration{Name: "name", Type: String, DefaultValue: "Documentation"}))
	require.NoError(t, o.AddDeclaration(Declaration{Name: "cleanOutputDir", Type: Boolean, DefaultValue: true}))
	require.NoError(t, o.AddDeclaration(Declaration{Name: "plugin", Type: Array}))
	return o
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDeclarationValidate(t *testing.T) {
	tests := []struct {
		name      string
		decl      Declaration
		expectErr bool
	}{
		{"valid string", Declaration{Name: "a", Type: String, DefaultValue: "x"}, false},
		{"valid without default", Declaration{Name: "a", Type: Boolean}, false},
		{"valid array default", Declaration{Name: "a", Type: Array, DefaultValue: []string{"x"}}, false},
		{"missing name", Declaration{Type: String}, true},
		{"default type mismatch", Declaration{Name: "a", Type: Boolean, DefaultValue: "yes"}, true},
		{"unknown type", Declaration{Name: "a", Type: ParameterType(9)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decl.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddDeclaration(t *testing.T) {
	o := newStore(t)

	err := o.AddDeclaration(Declaration{Name: "name", Type: String})
	require.Error(t, err, "duplicate declaration must fail")

	require.NoError(t, o.Resolve())
	err = o.AddDeclaration(Declaration{Name: "late", Type: String})
	require.Error(t, err, "declaring after resolution must fail")

	names := make([]string, 0)
	for _, d := range o.Declarations() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"cleanOutputDir", "name", "plugin"}, names)
}

func TestResolveDefaults(t *testing.T) {
	o := newStore(t)
	require.NoError(t, o.Resolve())

	name, err := o.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "Documentation", name)

	clean, err := o.GetBool("cleanOutputDir")
	require.NoError(t, err)
	assert.True(t, clean)

	plugins, err := o.GetValue("plugin")
	require.NoError(t, err)
	assert.Empty(t, plugins)

	_, set := o.Raw("name")
	assert.False(t, set)
}

func TestResolveRejectsUnknownOption(t *testing.T) {
	o := newStore(t)
	require.NoError(t, o.SetValue("nmae", "typo"))

	err := o.Resolve()
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
	assert.Contains(t, err.Error(), `unknown option "nmae"`)
}

func TestResolveRejectsTypeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		option  string
		value   any
		message string
	}{
		{"number for string", "name", 42.0, "option name must be of type string, got 42"},
		{"string for boolean", "cleanOutputDir", "yes", `option cleanOutputDir must be of type boolean, got "yes"`},
		{"mixed array", "plugin", []any{"a", 1.0}, `option plugin must be of type array, got ["a",1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newStore(t)
			require.NoError(t, o.SetValue(tt.option, tt.value))

			err := o.Resolve()
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
			se, ok := derrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, se.Message)
		})
	}
}

func TestGetValueBeforeResolve(t *testing.T) {
	o := newStore(t)
	_, err := o.GetValue("name")
	require.Error(t, err)

	require.NoError(t, o.Resolve())
	_, err = o.GetValue("missing")
	require.Error(t, err)

	require.Error(t, o.SetValue("name", "late"))
}

func TestReadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "docsite.json", `{
	"$schema": "https://example.com/schema.json",
	"name": "My Docs",
	"cleanOutputDir": false,
	"plugin": ["plugin-404"]
}`)

	o := newStore(t)
	require.NoError(t, o.ReadFile(path))
	require.NoError(t, o.Resolve())

	name, _ := o.GetString("name")
	clean, _ := o.GetBool("cleanOutputDir")
	plugins, _ := o.GetValue("plugin")
	assert.Equal(t, "My Docs", name)
	assert.False(t, clean)
	assert.Equal(t, []string{"plugin-404"}, plugins)
	_, set := o.Raw("name")
	assert.True(t, set)

	_, ok := o.Raw("$schema")
	assert.False(t, ok, "$-prefixed keys are ignored")
}

func TestReadFileYAMLWithEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSITE_TEST_TITLE", "From Env")
	writeFile(t, dir, ".env", "DOCSITE_TEST_SUFFIX=dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("DOCSITE_TEST_SUFFIX") })
	path := writeFile(t, dir, "docsite.yaml", "name: \"${DOCSITE_TEST_TITLE} ${DOCSITE_TEST_SUFFIX}\"\nplugin:\n  - plugin-404\n")

	o := newStore(t)
	require.NoError(t, o.ReadFile(path))
	require.NoError(t, o.Resolve())

	name, _ := o.GetString("name")
	assert.Equal(t, "From Env dotenv", name)
}

func TestResolveExpandsEnvInValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSITE_TEST_QUOTED", "say \"hi\"\nbye")
	path := writeFile(t, dir, "docsite.json", `{
	"name": "${DOCSITE_TEST_QUOTED}",
	"plugin": ["${DOCSITE_TEST_QUOTED}", "plain"],
	"raw": "${DOCSITE_TEST_QUOTED} $HOME"
}`)

	o := newStore(t)
	require.NoError(t, o.AddDeclaration(Declaration{Name: "raw", Type: String, Verbatim: true}))
	require.NoError(t, o.ReadFile(path))

	raw, ok := o.Raw("name")
	require.True(t, ok)
	assert.Equal(t, "${DOCSITE_TEST_QUOTED}", raw, "raw values are not expanded")

	require.NoError(t, o.Resolve())
	name, _ := o.GetString("name")
	assert.Equal(t, "say \"hi\"\nbye", name)

	plugins, err := o.GetValue("plugin")
	require.NoError(t, err)
	assert.Equal(t, []string{"say \"hi\"\nbye", "plain"}, plugins)

	verbatim, _ := o.GetString("raw")
	assert.Equal(t, "${DOCSITE_TEST_QUOTED} $HOME", verbatim)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("DOCSITE_TEST_X", "x")
	assert.Equal(t, "a-x-$DOCSITE_TEST_X-", ExpandEnv("a-${DOCSITE_TEST_X}-$DOCSITE_TEST_X-${DOCSITE_TEST_UNSET_VAR}"))
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := newStore(t).ReadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))

	bad := writeFile(t, dir, "bad.json", `{"name": `)
	err = newStore(t).ReadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	empty := writeFile(t, dir, "empty.json", "")
	require.NoError(t, newStore(t).ReadFile(empty))
}

func TestDigestIsStableAcrossFormats(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "a.json", `{"plugin":["plugin-404"],"name":"Docs"}`)
	yamlPath := writeFile(t, dir, "b.yaml", "name: Docs\nplugin: [plugin-404]\n")

	digest := func(path string) string {
		o := newStore(t)
		require.NoError(t, o.ReadFile(path))
		require.NoError(t, o.Resolve())
		d, err := o.Digest()
		require.NoError(t, err)
		return d
	}

	a, b := digest(jsonPath), digest(yamlPath)
	assert.Len(t, a, 64)
	assert.Equal(t, a, b)

	o := newStore(t)
	require.NoError(t, o.SetValue("name", "Other"))
	require.NoError(t, o.Resolve())
	c, err := o.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = newStore(t).Digest()
	assert.Error(t, err, "digest requires resolved options")
}

func TestSchemaListsDeclarations(t *testing.T) {
	o := newStore(t)
	data, err := Schema(o.decls)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cleanOutputDir":{"type":"boolean"}`)
	assert.Contains(t, string(data), `"plugin":{"items":{"type":"string"},"type":"array"}`)
	assert.Contains(t, string(data), `"additionalProperties":false`)
}
