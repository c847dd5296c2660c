package viatheme

import (
	"sync"
)

// TopicTheme is notified whenever the active theme or dark mode may have changed.
const TopicTheme = "theme"

// Hub fans a notification out to every subscribed page context.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[int]func()
	nextID   int
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[int]func())}
}

// Subscribe registers a sync function for a topic, returns unsubscribe function
func (b *Hub) Subscribe(topic string, syncFn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channels[topic] == nil {
		b.channels[topic] = make(map[int]func())
	}

	id := b.nextID
	b.nextID++
	b.channels[topic][id] = syncFn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.channels[topic], id)
	}
}

// Subscribers returns how many functions are registered for topic.
func (b *Hub) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.channels[topic])
}

// Notify calls all sync functions for a topic
func (b *Hub) Notify(topic string) {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.channels[topic]))
	for _, fn := range b.channels[topic] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	// Outside the lock: a sync may subscribe or unsubscribe.
	for _, fn := range fns {
		fn()
	}
}
