// Package memory provides a map-backed KVStore. It is the default medium for
// tests and for running without a configured database; nothing survives a
// restart.
package memory

import (
	"context"
	"sync"
)

// KV is an in-memory key-value store.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKV creates an empty in-memory store.
func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

// Get returns the stored value for key, or found=false when absent.
func (s *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set overwrites the value for key.
func (s *KV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}
