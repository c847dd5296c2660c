package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joeblew999/wellnown-theme/pkg/theme"
)

const usage = `usage: themectl [flags] <command>

commands:
  list                 themes, active one marked with *
  get                  active theme and dark mode
  set <id>             switch theme
  dark on|off|toggle   pin dark mode
  system               follow the terminal background again
  css                  the :root rule for the active theme
`

// cli runs one command against a controller.
type cli struct {
	ctrl *theme.Controller
	flag *theme.Flag
	root *theme.RootStyle
	out  io.Writer
	// swatches false renders color values as plain text.
	swatches bool
}

func (c *cli) run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return fmt.Errorf("no command")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
		return c.list()
	case "get":
		return c.get()
	case "set":
		if len(rest) != 1 {
			return fmt.Errorf("set takes one theme id")
		}
		return c.set(rest[0])
	case "dark":
		if len(rest) != 1 {
			return fmt.Errorf("dark takes on, off or toggle")
		}
		return c.dark(rest[0])
	case "system":
		return c.system()
	case "css":
		fmt.Fprintln(c.out, c.root.CSS())
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		fmt.Fprint(c.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) list() error {
	state := c.ctrl.State()
	catalog := c.ctrl.Catalog()
	for _, opt := range c.ctrl.Themes() {
		marker := " "
		if opt.ID == state.ActiveID {
			marker = "*"
		}
		vars := catalog[opt.ID].Vars(state.Dark)
		fmt.Fprintf(c.out, "%s %-14s %-14s %s\n", marker, opt.ID, opt.Label,
			c.swatch(vars["--q-primary"], vars["--q-secondary"], vars["--q-accent"]))
	}
	return nil
}

func (c *cli) get() error {
	state := c.ctrl.State()
	fmt.Fprintf(c.out, "theme: %s\n", state.ActiveID)
	fmt.Fprintf(c.out, "dark:  %t\n", state.Dark)
	return nil
}

func (c *cli) set(id string) error {
	if !c.ctrl.Catalog().Has(id) {
		return fmt.Errorf("%w: %s (have: %s)", theme.ErrUnknownTheme, id, strings.Join(c.ctrl.Catalog().IDs(), ", "))
	}
	c.ctrl.SetActiveTheme(id)
	return c.get()
}

func (c *cli) dark(arg string) error {
	switch arg {
	case "on":
		c.ctrl.SetDarkMode(true)
	case "off":
		c.ctrl.SetDarkMode(false)
	case "toggle":
		c.ctrl.ToggleDarkMode()
	default:
		return fmt.Errorf("dark takes on, off or toggle, not %q", arg)
	}
	return c.get()
}

// system hands dark mode back to the terminal preference. A resulting
// flip reaches the controller through its flag watch and is persisted.
func (c *cli) system() error {
	c.flag.SetMode(theme.ModeAuto)
	if err := c.get(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "following the terminal background")
	return nil
}

// swatch renders each color as a two-cell block followed by its value.
func (c *cli) swatch(colors ...string) string {
	parts := make([]string, 0, len(colors))
	for _, color := range colors {
		if color == "" {
			continue
		}
		if !c.swatches {
			parts = append(parts, color)
			continue
		}
		block := lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
		parts = append(parts, block+" "+color)
	}
	return strings.Join(parts, "  ")
}
