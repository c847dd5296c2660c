package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_Valid(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Validate(DefaultID))
	assert.Equal(t, []string{"ghibliDream", "mechaCore", "yandereLove"}, c.IDs())
}

func TestBuiltin_FreshCopy(t *testing.T) {
	first := Builtin()
	first["mechaCore"].Colors.Light["--q-primary"] = "#000000"

	second := Builtin()
	assert.Equal(t, "#90caf9", second["mechaCore"].Colors.Light["--q-primary"])
}

func TestDefinition_VarNames(t *testing.T) {
	d := Definition{Colors: ModeColors{
		Light: ColorVars{"--b": "1", "--a": "2"},
		Dark:  ColorVars{"--c": "3", "--a": ""},
	}}
	assert.Equal(t, []string{"--a", "--b", "--c"}, d.VarNames())
	assert.Equal(t, ColorVars{"--c": "3", "--a": ""}, d.Vars(true))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		def     string
		wantErr []error
	}{
		{
			name:    "empty",
			catalog: Catalog{},
			def:     "x",
			wantErr: []error{ErrEmptyCatalog},
		},
		{
			name:    "missing default",
			catalog: Catalog{"a": {Name: "A"}},
			def:     "b",
			wantErr: []error{ErrUnknownTheme},
		},
		{
			name: "bad variable names",
			catalog: Catalog{"a": {Colors: ModeColors{
				Light: ColorVars{"color": "red", "--": "blue"},
			}}},
			def:     "a",
			wantErr: []error{ErrInvalidVariable},
		},
		{
			name: "both problems",
			catalog: Catalog{"a": {Colors: ModeColors{
				Dark: ColorVars{"q-primary": "red"},
			}}},
			def:     "b",
			wantErr: []error{ErrInvalidVariable, ErrUnknownTheme},
		},
		{
			name:    "ok",
			catalog: scenarioCatalog(),
			def:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate(tt.def)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.True(t, errors.Is(err, want), "want %v in %v", want, err)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	src := `{
		"ocean": {
			"name": "Ocean",
			"pico": "blue",
			"colors": {
				"light": {"--q-primary": "#0277bd", "--q-accent": null},
				"dark":  {"--q-primary": "#4fc3f7"}
			}
		}
	}`

	c, err := LoadCatalog(strings.NewReader(src))
	require.NoError(t, err)
	require.True(t, c.Has("ocean"))

	ocean := c["ocean"]
	assert.Equal(t, "Ocean", ocean.Name)
	assert.Equal(t, "blue", ocean.Pico)
	assert.Equal(t, "#4fc3f7", ocean.Colors.Dark["--q-primary"])

	accent, ok := ocean.Colors.Light["--q-accent"]
	assert.True(t, ok, "null keeps the key")
	assert.Empty(t, accent)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader(`{}`))
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = LoadCatalog(strings.NewReader(`{"a":`))
	assert.Error(t, err)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mono":{"name":"Mono","colors":{"light":{"--fg":"#000"},"dark":{"--fg":"#fff"}}}}`), 0644))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Option{{ID: "mono", Label: "Mono"}}, c.Options())

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
