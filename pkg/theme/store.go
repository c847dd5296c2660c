package theme

import "sync"

// Default storage keys.
const (
	DefaultThemeKey = "app-active-theme-key"
	DefaultDarkKey  = "app-dark-mode-enabled"
)

// Store is a synchronous string key-value store used to persist choices.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Keys names the two storage keys the controller uses.
type Keys struct {
	Theme string
	Dark  string
}

func (k Keys) withDefaults() Keys {
	if k.Theme == "" {
		k.Theme = DefaultThemeKey
	}
	if k.Dark == "" {
		k.Dark = DefaultDarkKey
	}
	return k
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
