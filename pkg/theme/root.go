package theme

import (
	"sort"
	"strings"
	"sync"
)

// Root is the document root element's style surface.
type Root interface {
	SetProperty(name, value string)
	RemoveProperty(name string)
}

// RootStyle is a Root that keeps custom properties in memory and renders
// them as CSS for server-side pages.
type RootStyle struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewRootStyle creates an empty RootStyle.
func NewRootStyle() *RootStyle {
	return &RootStyle{props: make(map[string]string)}
}

func (r *RootStyle) SetProperty(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[name] = value
}

func (r *RootStyle) RemoveProperty(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.props, name)
}

// Property returns the value of a property and whether it is set.
func (r *RootStyle) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.props[name]
	return v, ok
}

// Properties returns a copy of all set properties.
func (r *RootStyle) Properties() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.props))
	for k, v := range r.props {
		out[k] = v
	}
	return out
}

// Inline renders the properties as a style attribute value, sorted by name.
func (r *RootStyle) Inline() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.props))
	for name := range r.props {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(r.props[name])
	}
	return b.String()
}

// CSS renders the properties as a :root rule.
func (r *RootStyle) CSS() string {
	return ":root{" + r.Inline() + "}"
}
