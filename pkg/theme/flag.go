package theme

import (
	"fmt"
	"strings"
	"sync"
)

// DarkFlag is the host framework's dark-mode switch.
// Watch callbacks fire whenever the resolved active value changes,
// whatever caused it.
type DarkFlag interface {
	IsActive() bool
	Set(dark bool)
	Watch(fn func(active bool)) (stop func())
}

// Mode is how a Flag decides whether dark is active.
type Mode string

const (
	ModeAuto  Mode = "auto" // follow the system preference
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode parses "auto", "light" or "dark" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeLight, ModeDark:
		return m, nil
	default:
		return "", fmt.Errorf("unknown dark mode %q (use: auto, light, dark)", s)
	}
}

// PreferenceFunc reports whether the system prefers a dark appearance.
type PreferenceFunc func() bool

// Flag is an in-process DarkFlag with an automatic mode.
type Flag struct {
	mu       sync.Mutex
	mode     Mode
	prefers  PreferenceFunc
	active   bool
	watchers map[int]func(bool)
	order    []int
	nextID   int
}

// NewFlag creates a Flag in the given mode. A nil prefers func means the
// system never prefers dark.
func NewFlag(mode Mode, prefers PreferenceFunc) *Flag {
	if prefers == nil {
		prefers = func() bool { return false }
	}
	if mode == "" {
		mode = ModeAuto
	}
	f := &Flag{
		mode:     mode,
		prefers:  prefers,
		watchers: make(map[int]func(bool)),
	}
	f.active = f.resolve()
	return f
}

func (f *Flag) resolve() bool {
	switch f.mode {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		return f.prefers()
	}
}

// IsActive reports whether dark is currently active.
func (f *Flag) IsActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Mode returns the current mode.
func (f *Flag) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Set forces dark or light mode.
func (f *Flag) Set(dark bool) {
	if dark {
		f.SetMode(ModeDark)
		return
	}
	f.SetMode(ModeLight)
}

// SetMode switches the mode and notifies watchers if the active value changed.
func (f *Flag) SetMode(mode Mode) {
	f.mu.Lock()
	f.mode = mode
	f.mu.Unlock()
	f.Refresh()
}

// Refresh re-resolves the active value, e.g. after the system preference
// changed, and notifies watchers if it differs.
func (f *Flag) Refresh() {
	f.mu.Lock()
	active := f.resolve()
	if active == f.active {
		f.mu.Unlock()
		return
	}
	f.active = active
	fns := make([]func(bool), 0, len(f.order))
	for _, id := range f.order {
		fns = append(fns, f.watchers[id])
	}
	f.mu.Unlock()

	// Outside the lock: watchers may call back into the flag.
	for _, fn := range fns {
		fn(active)
	}
}

// Watch registers fn for active-value changes and returns its unsubscribe func.
func (f *Flag) Watch(fn func(active bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.watchers[id] = fn
	f.order = append(f.order, id)

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.watchers[id]; !ok {
			return
		}
		delete(f.watchers, id)
		for i, v := range f.order {
			if v == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
	}
}
