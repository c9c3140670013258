// Package store contains the core logic for the in-memory key-value store.
// It is designed to be thread-safe for concurrent access: operations on the
// same key are linearizable, and operations on different keys do not block
// one another.
package store

import "github.com/atlaskv/atlaskv/internal/types"

// Store is the capability set the rest of the system programs against.
// By depending on this interface the HTTP layer can be tested with a mock,
// and a persistent implementation can be added later without touching
// callers. The only concrete implementation today is Memory.
type Store interface {
	// Get returns the record for key. Read-only; never touches metadata.
	Get(key types.Key) (types.Record, error)

	// Insert creates a record for key with value. It is an atomic
	// check-then-set: if the key is already present it fails with
	// KeyAlreadyExists and leaves the existing record untouched.
	Insert(key types.Key, value string) (types.Record, error)

	// Upsert creates the record if absent, otherwise replaces its value.
	// On update the original CreatedAt is preserved and UpdatedAt is
	// refreshed. Never fails on existence grounds.
	Upsert(key types.Key, value string) types.Record

	// Delete atomically removes the record for key and returns it as it
	// existed immediately before removal.
	Delete(key types.Key) (types.Record, error)

	// ListKeys returns a point-in-time snapshot of all keys, unordered.
	ListKeys() []types.Key
}
