package viatheme

import (
	"github.com/go-via/via"
	. "github.com/go-via/via/h"

	"github.com/joeblew999/wellnown-theme/pkg/theme"
)

// DefaultPath is where RegisterPage mounts the selector.
const DefaultPath = "/themes"

// Styler renders the current CSS custom properties as an inline style.
// *theme.RootStyle satisfies it.
type Styler interface {
	Inline() string
}

// SystemFollower can hand dark mode back to the system preference.
// *theme.Flag satisfies it.
type SystemFollower interface {
	Mode() theme.Mode
	SetMode(theme.Mode)
}

// PageOptions configures the Via page
type PageOptions struct {
	// Path overrides DefaultPath
	Path string
	// NavBar returns the navigation bar H element
	NavBar func(title string) H
	// Style is the root the controller writes to. Its inline form is put
	// on the page's main element.
	Style Styler
	// System enables the "Follow system" button when set.
	System SystemFollower
}

// RegisterPage registers the theme selector page with Via. Every action
// notifies TopicTheme on hub so all open pages re-render.
func RegisterPage(v *via.V, ctrl *theme.Controller, hub *Hub, opts PageOptions) {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	catalog := ctrl.Catalog()
	themes := ctrl.Themes()

	v.Page(path, func(c *via.Context) {
		selectTheme := make(map[string]H, len(themes))
		for _, opt := range themes {
			id := opt.ID
			selectTheme[id] = c.Action(func() {
				ctrl.SetActiveTheme(id)
				hub.Notify(TopicTheme)
			}).OnClick()
		}

		toggleDark := c.Action(func() {
			ctrl.ToggleDarkMode()
			hub.Notify(TopicTheme)
		})

		followSystem := c.Action(func() {
			if opts.System != nil {
				opts.System.SetMode(theme.ModeAuto)
			}
			hub.Notify(TopicTheme)
		})

		hub.Subscribe(TopicTheme, func() { c.Sync() })

		c.View(func() H {
			state := ctrl.State()

			var navEl H
			if opts.NavBar != nil {
				navEl = opts.NavBar("Themes")
			}

			var inline string
			if opts.Style != nil {
				inline = opts.Style.Inline()
			}

			buttons := []H{Role("group")}
			for _, opt := range themes {
				class := SwatchClass(catalog[opt.ID].Pico)
				if opt.ID != state.ActiveID {
					class += " outline"
				}
				buttons = append(buttons, Button(Text(opt.Label), Class(class), selectTheme[opt.ID]))
			}

			darkLabel := "Switch to dark"
			if state.Dark {
				darkLabel = "Switch to light"
			}

			var systemEl H
			if opts.System != nil {
				systemEl = Button(Text("Follow system"), Class("secondary"), followSystem.OnClick(),
					func() H {
						if opts.System.Mode() == theme.ModeAuto {
							return Attr("disabled", "disabled")
						}
						return nil
					}(),
				)
			}

			return Main(Class("container"),
				Attr("style", inline),
				Attr("data-theme", modeName(state.Dark)),
				navEl,

				Section(
					H1(Text("Theme")),
					P(Text("Active: "), Strong(Text(activeLabel(catalog, state.ActiveID))),
						Textf(" (%s)", modeName(state.Dark))),
				),

				Article(
					Header(H2(Text("Choose a theme"))),
					Div(buttons...),
				),

				Article(
					Header(H2(Text("Dark mode"))),
					Div(Role("group"),
						Button(Text(darkLabel), Class("contrast"), toggleDark.OnClick()),
						systemEl,
					),
					followLabel(opts.System),
				),

				Article(
					Header(H2(Text("Variables"))),
					Pre(Code(Text(inline))),
				),
			)
		})
	})
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func activeLabel(catalog theme.Catalog, id string) string {
	if def, ok := catalog[id]; ok && def.Name != "" {
		return def.Name
	}
	return id
}

func followLabel(system SystemFollower) H {
	if system == nil {
		return nil
	}
	if system.Mode() == theme.ModeAuto {
		return P(Small(Text("Following the system preference")))
	}
	return P(Small(Textf("Pinned to %s", system.Mode())))
}
