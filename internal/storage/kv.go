// Package storage persists profiles, attempts and leaderboard rosters as
// JSON records in a key-value store. The store mechanism is pluggable;
// Redis is the default backend, with a Postgres-backed table and an
// in-memory map available behind the same interface.
package storage

import (
	"context"
	"sync"
)

// Fixed key prefixes. All records live in one flat keyspace.
const (
	PrefixProfile     = "profile:"
	PrefixAttempt     = "attempt:"
	PrefixLeaderboard = "leaderboard:"
)

// KV is the minimal blob-store contract the typed Store is built on.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns the values of every key with the given prefix.
	List(ctx context.Context, prefix string) ([][]byte, error)
	// DeletePrefix removes every key with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// MemoryKV is a process-local KV used in tests and zero-config development.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MemoryKV) List(_ context.Context, prefix string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out [][]byte
	for key, val := range m.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			cp := make([]byte, len(val))
			copy(cp, val)
			out = append(out, cp)
		}
	}
	return out, nil
}
