// Package blob provides the persistence backends for the shortening
// history. Each backend stores the serialized history as one opaque
// value under a single well-known key.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no history has been persisted yet.
var ErrNotFound = errors.New("history blob not found")

// Store is a single-key blob store. Implementations treat the value as
// opaque bytes; the history package owns the encoding.
type Store interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
