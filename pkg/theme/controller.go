package theme

import (
	"log/slog"
	"strconv"
	"sync"
)

// Source tags where a state change came from.
type Source int

const (
	// SourceInternal is a change made through the controller's setters.
	// It is persisted and pushed to the dark flag.
	SourceInternal Source = iota
	// SourceExternal is a change observed on the dark flag.
	// It is persisted but never pushed back to the flag.
	SourceExternal
	// SourceStore is a change read back from the store (another tab or
	// instance wrote it). It is pushed to the flag but not persisted again.
	SourceStore
)

func (s Source) String() string {
	switch s {
	case SourceInternal:
		return "internal"
	case SourceExternal:
		return "external"
	case SourceStore:
		return "store"
	default:
		return "unknown"
	}
}

// State is the controller's view of the user's choice.
type State struct {
	ActiveID string
	Dark     bool
}

type field uint8

const (
	fieldTheme field = 1 << iota
	fieldDark
)

// Options configures Initialize. Nil collaborators get in-memory defaults.
type Options struct {
	Catalog   Catalog
	DefaultID string // fallback theme (default: DefaultID)
	Store     Store
	Dark      DarkFlag
	Root      Root
	Keys      Keys
	Logger    *slog.Logger
}

// Controller owns the active theme and dark mode and keeps the root style,
// the store and the dark flag in step with them.
type Controller struct {
	catalog   Catalog
	defaultID string
	store     Store
	dark      DarkFlag
	root      Root
	keys      Keys
	log       *slog.Logger

	mu      sync.Mutex
	state   State
	applied map[string]bool // properties this controller has set on root

	closeOnce sync.Once
	stopWatch func()
}

// Initialize builds the controller, loads the persisted choice, syncs the
// dark flag, applies the CSS variables and starts observing the flag.
// Call it once at startup and Close it on shutdown.
func Initialize(opts Options) *Controller {
	c := &Controller{
		catalog:   opts.Catalog,
		defaultID: opts.DefaultID,
		store:     opts.Store,
		dark:      opts.Dark,
		root:      opts.Root,
		keys:      opts.Keys.withDefaults(),
		log:       opts.Logger,
		applied:   make(map[string]bool),
	}
	if c.catalog == nil {
		c.catalog = Builtin()
	}
	if c.defaultID == "" {
		c.defaultID = DefaultID
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.dark == nil {
		c.dark = NewFlag(ModeAuto, nil)
	}
	if c.root == nil {
		c.root = NewRootStyle()
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.log = c.log.With("component", "theme")

	c.state = State{ActiveID: c.loadActiveID(), Dark: c.loadDark()}

	if c.dark.IsActive() != c.state.Dark {
		c.dark.Set(c.state.Dark)
	}

	c.mu.Lock()
	c.applyCSSVariables(c.state.ActiveID, c.state.Dark)
	c.mu.Unlock()

	c.stopWatch = c.dark.Watch(c.observeDark)

	c.log.Debug("initialized", "theme", c.state.ActiveID, "dark", c.state.Dark)
	return c
}

func (c *Controller) loadActiveID() string {
	if id, ok := c.store.Get(c.keys.Theme); ok && id != "" {
		return id
	}
	return c.defaultID
}

// loadDark prefers the persisted value; without one it takes the flag's
// current value, which follows the system preference in auto mode.
func (c *Controller) loadDark() bool {
	if dark, ok := c.storedDark(); ok {
		return dark
	}
	return c.dark.IsActive()
}

func (c *Controller) storedDark() (bool, bool) {
	raw, ok := c.store.Get(c.keys.Dark)
	if !ok || raw == "" {
		return false, false
	}
	dark, err := strconv.ParseBool(raw)
	if err != nil {
		c.log.Warn("ignoring stored dark mode", "key", c.keys.Dark, "value", raw, "error", err)
		return false, false
	}
	return dark, true
}

// ActiveTheme returns the active theme identifier.
func (c *Controller) ActiveTheme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ActiveID
}

// DarkMode reports whether dark mode is enabled.
func (c *Controller) DarkMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Dark
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Themes lists the selectable themes sorted by identifier.
func (c *Controller) Themes() []Option {
	return c.catalog.Options()
}

// Catalog returns the catalog. Callers must not modify it.
func (c *Controller) Catalog() Catalog {
	return c.catalog
}

// DefaultID returns the fallback theme identifier.
func (c *Controller) DefaultID() string {
	return c.defaultID
}

// SetActiveTheme switches to the theme id. Unknown ids are ignored with a
// warning.
func (c *Controller) SetActiveTheme(id string) {
	if !c.catalog.Has(id) {
		c.log.Warn("attempted to set unknown theme", "theme", id)
		return
	}
	c.update(SourceInternal, func(s *State) field {
		s.ActiveID = id
		return fieldTheme
	})
}

// SetDarkMode enables or disables dark mode. When it returns the dark flag
// reports the same value.
func (c *Controller) SetDarkMode(enabled bool) {
	c.update(SourceInternal, func(s *State) field {
		s.Dark = enabled
		return fieldDark
	})
}

// ToggleDarkMode flips dark mode.
func (c *Controller) ToggleDarkMode() {
	c.update(SourceInternal, func(s *State) field {
		s.Dark = !s.Dark
		return fieldDark
	})
}

// Reload adopts values written to the store by someone else.
func (c *Controller) Reload() {
	id, idOK := c.store.Get(c.keys.Theme)
	dark, darkOK := c.storedDark()

	c.update(SourceStore, func(s *State) field {
		var changed field
		if idOK && id != "" && id != s.ActiveID {
			s.ActiveID = id
			changed |= fieldTheme
		}
		if darkOK && dark != s.Dark {
			s.Dark = dark
			changed |= fieldDark
		}
		return changed
	})
}

// observeDark is the dark flag watcher.
func (c *Controller) observeDark(active bool) {
	c.update(SourceExternal, func(s *State) field {
		if s.Dark == active {
			return 0
		}
		s.Dark = active
		return fieldDark
	})
}

// update mutates state under the lock, persists and re-applies CSS.
// Only non-external dark changes are forwarded to the flag; the flag call
// happens after unlocking because the flag notifies watchers synchronously.
func (c *Controller) update(src Source, set func(s *State) field) {
	c.mu.Lock()
	changed := set(&c.state)
	if changed == 0 {
		c.mu.Unlock()
		return
	}
	s := c.state
	if src != SourceStore {
		c.persist(s, changed)
	}
	c.applyCSSVariables(s.ActiveID, s.Dark)
	c.mu.Unlock()

	c.log.Debug("state changed", "source", src, "theme", s.ActiveID, "dark", s.Dark)

	if src != SourceExternal && changed&fieldDark != 0 {
		c.dark.Set(s.Dark)
	}
}

func (c *Controller) persist(s State, changed field) {
	if changed&fieldTheme != 0 {
		if err := c.store.Set(c.keys.Theme, s.ActiveID); err != nil {
			c.log.Warn("persisting theme failed", "key", c.keys.Theme, "error", err)
		}
	}
	if changed&fieldDark != 0 {
		if err := c.store.Set(c.keys.Dark, strconv.FormatBool(s.Dark)); err != nil {
			c.log.Warn("persisting dark mode failed", "key", c.keys.Dark, "error", err)
		}
	}
}

// applyCSSVariables writes the theme's variables for the mode onto root.
// A missing theme falls back to the default exactly once. Must hold c.mu.
func (c *Controller) applyCSSVariables(id string, isDark bool) {
	def, ok := c.catalog[id]
	if !ok {
		c.log.Warn("theme not found, applying default", "theme", id, "default", c.defaultID)
		if id != c.defaultID {
			c.applyCSSVariables(c.defaultID, isDark)
		}
		return
	}

	vars := def.Vars(isDark)
	union := def.VarNames()

	inTheme := make(map[string]bool, len(union))
	for _, name := range union {
		inTheme[name] = true
		if vars[name] == "" {
			c.root.RemoveProperty(name)
			delete(c.applied, name)
		}
	}
	// Leftovers from a previous theme that this theme never mentions.
	for name := range c.applied {
		if !inTheme[name] {
			c.root.RemoveProperty(name)
			delete(c.applied, name)
		}
	}

	for name, value := range vars {
		if value != "" {
			c.root.SetProperty(name, value)
			c.applied[name] = true
		} else {
			c.root.RemoveProperty(name)
			delete(c.applied, name)
		}
	}
}

// Close stops observing the dark flag.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		if c.stopWatch != nil {
			c.stopWatch()
		}
	})
	return nil
}
