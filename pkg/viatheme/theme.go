// Package viatheme serves the theme controller as a Via page.
//
// It maps catalog Pico accent names to picocss themes, broadcasts theme
// changes across open pages and mounts the /themes selector.
//
// Usage:
//
//	import "github.com/joeblew999/wellnown-theme/pkg/viatheme"
//
//	pico, name := viatheme.GetFromEnv("cyan")
//	v.Config(via.Options{Plugins: []via.Plugin{
//		picocss.WithOptions(picocss.Options{Theme: pico, IncludeColors: true}),
//	}})
//	viatheme.RegisterPage(v, ctrl, hub, viatheme.PageOptions{Style: root})
package viatheme

import (
	"os"
	"strings"

	"github.com/go-via/via-plugin-picocss/picocss"
)

// DefaultPico is used when a name is not a Pico accent.
const DefaultPico = "cyan"

// ThemeMap maps theme names to picocss.Theme constants.
var ThemeMap = map[string]picocss.Theme{
	"amber":   picocss.ThemeAmber,
	"blue":    picocss.ThemeBlue,
	"cyan":    picocss.ThemeCyan,
	"fuchsia": picocss.ThemeFuchia,
	"green":   picocss.ThemeGreen,
	"grey":    picocss.ThemeGrey,
	"indigo":  picocss.ThemeIndigo,
	"jade":    picocss.ThemeJade,
	"lime":    picocss.ThemeLime,
	"orange":  picocss.ThemeOrange,
	"pink":    picocss.ThemePink,
	"pumpkin": picocss.ThemePumpkin,
	"purple":  picocss.ThemePurple,
	"red":     picocss.ThemeRed,
	"sand":    picocss.ThemeSand,
	"slate":   picocss.ThemeSlate,
	"violet":  picocss.ThemeViolet,
	"yellow":  picocss.ThemeYellow,
	"zinc":    picocss.ThemeZinc,
}

// PicoTheme returns the picocss theme for an accent name and whether the
// name was known. Unknown names give the DefaultPico theme.
func PicoTheme(name string) (picocss.Theme, bool) {
	if theme, ok := ThemeMap[strings.ToLower(name)]; ok {
		return theme, true
	}
	return ThemeMap[DefaultPico], false
}

// GetFromEnv reads VIA_THEME and returns the theme and its resolved name.
// defaultName is used when VIA_THEME is unset or not an accent.
func GetFromEnv(defaultName string) (picocss.Theme, string) {
	name := strings.ToLower(os.Getenv("VIA_THEME"))
	if name == "" {
		name = defaultName
	}
	if theme, ok := PicoTheme(name); ok {
		return theme, name
	}
	if theme, ok := PicoTheme(defaultName); ok {
		return theme, strings.ToLower(defaultName)
	}
	return ThemeMap[DefaultPico], DefaultPico
}

// SwatchClass is the pico colors class painting a swatch in the accent.
func SwatchClass(name string) string {
	if _, ok := ThemeMap[strings.ToLower(name)]; !ok {
		name = DefaultPico
	}
	return "pico-background-" + strings.ToLower(name)
}
