// Package history keeps a bounded, ordered record of past shortenings,
// mirrored to a blob store on every change.
package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/linksnap/linksnap/internal/history/blob"
	"go.uber.org/zap"
)

// Capacity bounds the collection; inserting past it evicts the oldest
// entry.
const Capacity = 20

// Entry is one past shortening. Entries are immutable once recorded.
// Timestamps are epoch milliseconds, matching the wire format.
type Entry struct {
	LongURL         string `json:"longUrl"`
	ShortURL        string `json:"shortUrl"`
	CreatedAt       int64  `json:"createdAt"`
	ExpiresAt       int64  `json:"expiresAt"`
	ValidityMinutes int    `json:"validityMinutes"`
}

// Store holds the in-memory collection, newest first, and mirrors it to
// the blob store after every mutation. Persistence is best effort: a
// backend fault never fails the caller and the in-memory state stays
// authoritative for the session.
//
// Store is not safe for concurrent use; callers serialize mutations the
// same way they serialize submissions.
type Store struct {
	blob    blob.Store
	logger  *zap.Logger
	entries []Entry
}

// NewStore creates a history store over the given blob backend.
func NewStore(b blob.Store, logger *zap.Logger) *Store {
	return &Store{blob: b, logger: logger}
}

// Load rehydrates the collection from the blob store. A missing blob,
// malformed JSON, or a backend fault all yield an empty collection.
func (s *Store) Load(ctx context.Context) {
	s.entries = nil

	data, err := s.blob.Get(ctx)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			s.logger.Debug("history load failed, starting empty", zap.Error(err))
		}

		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Debug("history blob malformed, starting empty", zap.Error(err))

		return
	}

	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}

	s.entries = entries
}

// Record prepends e, truncates the collection to Capacity, and
// persists the result.
func (s *Store) Record(ctx context.Context, e Entry) {
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}

	s.persist(ctx)
}

// Clear empties the collection and persists the empty state.
func (s *Store) Clear(ctx context.Context) {
	s.entries = nil
	s.persist(ctx)
}

// Entries returns a snapshot of the collection, newest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Len reports the current number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) persist(ctx context.Context) {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Debug("history encode failed", zap.Error(err))

		return
	}

	// Persistence faults are swallowed: history degrades to ephemeral.
	if err := s.blob.Set(ctx, data); err != nil {
		s.logger.Debug("history persist failed", zap.Error(err))
	}
}
