package blob

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. It backs tests and the memory history
// mode, where persistence across runs is not wanted.
type Memory struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// NewMemory creates a new in-memory blob store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.set {
		return nil, ErrNotFound
	}

	out := make([]byte, len(m.data))
	copy(out, m.data)

	return out, nil
}

func (m *Memory) Set(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]byte(nil), data...)
	m.set = true

	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	m.set = false

	return nil
}
