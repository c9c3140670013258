package store

import (
	"fmt"

	"github.com/atlaskv/atlaskv/internal/types"
)

// ErrorKind enumerates the closed set of store error kinds. Both kinds are
// expected outcomes of correct operations, not faults: there is no I/O in
// this engine, so nothing here is transient or fatal.
type ErrorKind int

const (
	// KeyNotFound is returned by Get and Delete for absent keys.
	KeyNotFound ErrorKind = iota
	// KeyAlreadyExists is returned by Insert when the key is present.
	KeyAlreadyExists
)

// Error is a typed store error carrying the offending key, so callers can
// build messages and map kinds to transport-level codes deterministically.
type Error struct {
	Kind ErrorKind
	Key  types.Key
}

func (e *Error) Error() string {
	switch e.Kind {
	case KeyAlreadyExists:
		return fmt.Sprintf("The key '%s' already exists in the store", e.Key)
	default:
		return fmt.Sprintf("The key '%s' does not exist in the store", e.Key)
	}
}

// Code returns the stable machine-readable code for this error.
func (e *Error) Code() string {
	switch e.Kind {
	case KeyAlreadyExists:
		return "KEY_ALREADY_EXISTS"
	default:
		return "KEY_NOT_FOUND"
	}
}

func notFound(key types.Key) *Error {
	return &Error{Kind: KeyNotFound, Key: key}
}

func alreadyExists(key types.Key) *Error {
	return &Error{Kind: KeyAlreadyExists, Key: key}
}
