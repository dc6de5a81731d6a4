package msgcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// Store holds compiled messages by key.
//
// Messages are immutable, so a Store may hand the same Message to any
// number of callers.
type Store interface {
	// Get retrieves a message by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (icu.Message, error)

	// Set stores a message.
	Set(ctx context.Context, key string, msg icu.Message) error

	// Delete removes a key from the store.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes all entries from the store.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Key returns the cache key of a message source: the hex SHA-256 of the
// source text.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
