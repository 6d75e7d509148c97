package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Backend. Values are copied on the way in and out.
type Memory struct {
	slots map[string][]byte
	mu    sync.RWMutex
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) HealthCheck(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
