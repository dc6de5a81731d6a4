package msgcache

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("msgcache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("msgcache: closed")

	// ErrMarshal is returned when message serialization fails.
	ErrMarshal = errors.New("msgcache: failed to marshal message")

	// ErrUnmarshal is returned when message deserialization fails.
	ErrUnmarshal = errors.New("msgcache: failed to unmarshal message")
)
