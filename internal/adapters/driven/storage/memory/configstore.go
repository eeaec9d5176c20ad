package memory

import (
	"sync"

	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Values are returned as stored;
// typed getters yield the zero value on a missing key or a type mismatch.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns key as a string.
func (s *ConfigStore) GetString(key string) string {
	return lookup[string](s, key)
}

// GetInt returns key as an int, truncating floats.
func (s *ConfigStore) GetInt(key string) int {
	return int(s.number(key))
}

// GetFloat returns key as a float64.
func (s *ConfigStore) GetFloat(key string) float64 {
	return s.number(key)
}

// GetBool returns key as a bool.
func (s *ConfigStore) GetBool(key string) bool {
	return lookup[bool](s, key)
}

// Set stores value under key. It never fails.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Load is a no-op; there is nothing to reload.
func (s *ConfigStore) Load() error {
	return nil
}

// Path is always empty, so callers skip file watching.
func (s *ConfigStore) Path() string {
	return ""
}

func (s *ConfigStore) number(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func lookup[T any](s *ConfigStore, key string) T {
	val, _ := s.Get(key)
	t, _ := val.(T)
	return t
}
