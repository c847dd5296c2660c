package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// DefaultID is the identifier of the built-in fallback theme.
const DefaultID = "mechaCore"

// VarPrefix is the prefix every CSS custom property name carries.
const VarPrefix = "--"

// Catalog errors.
var (
	ErrEmptyCatalog    = errors.New("theme catalog is empty")
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrInvalidVariable = errors.New("invalid css variable name")
)

// ColorVars maps CSS custom property names to values.
// An empty value means the property is unset and must be cleared.
type ColorVars map[string]string

// ModeColors holds the variable sets for both modes of a theme.
type ModeColors struct {
	Light ColorVars `json:"light"`
	Dark  ColorVars `json:"dark"`
}

// Definition describes one theme.
type Definition struct {
	Name   string     `json:"name"`
	Pico   string     `json:"pico,omitempty"` // PicoCSS accent used for swatches
	Colors ModeColors `json:"colors"`
}

// Vars returns the variable set for the given mode.
func (d Definition) Vars(dark bool) ColorVars {
	if dark {
		return d.Colors.Dark
	}
	return d.Colors.Light
}

// VarNames returns the union of variable names used by both modes, sorted.
func (d Definition) VarNames() []string {
	seen := make(map[string]bool, len(d.Colors.Light)+len(d.Colors.Dark))
	names := make([]string, 0, len(d.Colors.Light)+len(d.Colors.Dark))
	for _, set := range []ColorVars{d.Colors.Light, d.Colors.Dark} {
		for name := range set {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Catalog maps theme identifiers to definitions.
type Catalog map[string]Definition

// Option is a selectable theme entry for UI pickers.
type Option struct {
	ID    string
	Label string
}

// Has reports whether id names a theme in the catalog.
func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// IDs returns the sorted theme identifiers.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Options returns identifier/label pairs sorted by identifier.
func (c Catalog) Options() []Option {
	ids := c.IDs()
	opts := make([]Option, 0, len(ids))
	for _, id := range ids {
		opts = append(opts, Option{ID: id, Label: c[id].Name})
	}
	return opts
}

// Validate checks the catalog is usable with the given default theme.
// All problems are joined into one error.
func (c Catalog) Validate(defaultID string) error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}

	var errs []error
	if !c.Has(defaultID) {
		errs = append(errs, fmt.Errorf("%w: default %q", ErrUnknownTheme, defaultID))
	}
	for _, id := range c.IDs() {
		for _, name := range c[id].VarNames() {
			if !strings.HasPrefix(name, VarPrefix) || len(name) == len(VarPrefix) {
				errs = append(errs, fmt.Errorf("%w: %q in theme %q", ErrInvalidVariable, name, id))
			}
		}
	}
	return errors.Join(errs...)
}

// LoadCatalog decodes a JSON catalog:
//
//	{"ocean": {"name": "Ocean", "colors": {"light": {"--q-primary": "#0277bd"}, "dark": {...}}}}
//
// A null variable value decodes to "" and clears the property.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(c) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// LoadCatalogFile reads a JSON catalog from path.
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Builtin returns a fresh copy of the built-in catalog.
func Builtin() Catalog {
	return Catalog{
		"mechaCore": {
			Name: "Mecha Core",
			Pico: "cyan",
			Colors: ModeColors{
				Light: ColorVars{
					"--q-primary":             "#90caf9",
					"--q-secondary":           "#cfd8dc",
					"--q-accent":              "#00e5ff",
					"--q-page-bg":             "#eceff1",
					"--q-text-color":          "#263238",
					"--my-custom-header-bg":   "#455a64",
					"--my-custom-header-text": "#e1f5fe",
				},
				Dark: ColorVars{
					"--q-primary":             "#00b0ff",
					"--q-secondary":           "#37474f",
					"--q-accent":              "#64ffda",
					"--q-dark-page":           "#121212",
					"--q-body-text":           "#cfd8dc",
					"--my-custom-header-bg":   "#263238",
					"--my-custom-header-text": "#a7ffeb",
				},
			},
		},
		"yandereLove": {
			Name: "Yandere Love",
			Pico: "pink",
			Colors: ModeColors{
				Light: ColorVars{
					"--q-primary":             "#e91e63",
					"--q-secondary":           "#f8bbd0",
					"--q-accent":              "#9c27b0",
					"--q-page-bg":             "#fff0f5",
					"--q-text-color":          "#880e4f",
					"--my-custom-header-bg":   "#c2185b",
					"--my-custom-header-text": "#ffffff",
				},
				Dark: ColorVars{
					"--q-primary":             "#f06292",
					"--q-secondary":           "#ba68c8",
					"--q-accent":              "#ec407a",
					"--q-dark-page":           "#2c003e",
					"--q-body-text":           "#ffdde1",
					"--my-custom-header-bg":   "#6a1b9a",
					"--my-custom-header-text": "#ffffff",
				},
			},
		},
		"ghibliDream": {
			Name: "Ghibli Dream",
			Pico: "lime",
			Colors: ModeColors{
				Light: ColorVars{
					"--q-primary":             "#8bc34a",
					"--q-secondary":           "#aed581",
					"--q-accent":              "#ffb74d",
					"--q-page-bg":             "#f1f8e9",
					"--q-text-color":          "#33691e",
					"--my-custom-header-bg":   "#689f38",
					"--my-custom-header-text": "#ffffff",
				},
				Dark: ColorVars{
					"--q-primary":             "#aed581",
					"--q-secondary":           "#7cb342",
					"--q-accent":              "#ffa726",
					"--q-dark-page":           "#263238",
					"--q-body-text":           "#e0f2f1",
					"--my-custom-header-bg":   "#1b5e20",
					"--my-custom-header-text": "#c8e6c9",
				},
			},
		},
	}
}
