// Package theme switches named color themes and light/dark mode for a web UI.
//
// A Controller owns the active theme identifier and the dark-mode flag,
// persists both to a Store, keeps the dark flag in step with the host UI
// framework (a DarkFlag) and applies the result as CSS custom properties on
// a Root.
//
// Usage:
//
//	import "github.com/joeblew999/wellnown-theme/pkg/theme"
//
//	root := theme.NewRootStyle()
//	ctrl := theme.Initialize(theme.Options{
//		Catalog:   theme.Builtin(),
//		DefaultID: theme.DefaultID,
//		Store:     theme.NewMemoryStore(),
//		Dark:      theme.NewFlag(theme.ModeAuto, nil),
//		Root:      root,
//	})
//	defer ctrl.Close()
//
//	ctrl.SetActiveTheme("ghibliDream")
//	ctrl.ToggleDarkMode()
//	fmt.Println(root.CSS()) // :root{--q-primary:#aed581;...}
package theme
