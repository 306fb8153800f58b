package stub

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound means no link exists for a code.
	ErrNotFound = errors.New("short link not found")
	// ErrAliasConflict means the requested code is already taken.
	ErrAliasConflict = errors.New("alias taken")
)

// Link is one stored short link.
type Link struct {
	Code      string
	LongURL   string
	URLHash   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// MemoryStore keeps links in memory. It exists only for the stub, so
// there is no durable backend behind it.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[string]Link
	hashes map[string]string // urlHash -> code
}

// NewMemoryStore creates an empty in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:  make(map[string]Link),
		hashes: make(map[string]string),
	}
}

// Save stores link under its code. ErrAliasConflict is returned when
// the code is already mapped to a different long URL.
func (m *MemoryStore) Save(_ context.Context, link Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.links[link.Code]; ok && existing.LongURL != link.LongURL {
		return ErrAliasConflict
	}

	m.links[link.Code] = link
	if link.URLHash != "" {
		m.hashes[link.URLHash] = link.Code
	}

	return nil
}

// Get returns the link stored under code.
func (m *MemoryStore) Get(_ context.Context, code string) (Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return Link{}, ErrNotFound
	}

	return link, nil
}

// CodeByHash returns the code already assigned to a URL hash.
func (m *MemoryStore) CodeByHash(_ context.Context, urlHash string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.hashes[urlHash]
	if !ok {
		return "", ErrNotFound
	}

	return code, nil
}

// Len reports the number of stored links.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.links)
}
