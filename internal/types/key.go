// Package types contains the core value types of the store: the validated
// Key identifier and the Record/Metadata pair kept for every entry.
package types

import (
	"encoding/json"
	"errors"
	"unicode"
)

// MaxKeyLength is the maximum allowed key length in bytes.
const MaxKeyLength = 255

// Key validation errors. Each invalid input maps to exactly one of these,
// decided by the precedence in Parse.
var (
	ErrKeyEmpty             = errors.New("Key cannot be empty")
	ErrKeyTooLong           = errors.New("Key exceeds maximum length of 255 characters")
	ErrKeyInvalidCharacters = errors.New("Key contains invalid characters (only a-z, A-Z, 0-9, _, - allowed)")

	// ErrKeyWhitespace is reserved in the taxonomy but never produced:
	// whitespace is rejected by the character-set rule before a dedicated
	// whitespace check would run. Callers must not rely on receiving it.
	ErrKeyWhitespace = errors.New("Key cannot have leading or trailing whitespace")
)

// Key is a validated identifier for a stored record. A Key is only ever
// obtained through Parse, so holding one guarantees the invariants: non-empty,
// at most MaxKeyLength bytes, and restricted to letters, digits, '-' and '_'.
// The zero value is invalid and must not be used.
type Key struct {
	s string
}

// Parse validates raw and wraps it in a Key. Rules are checked in a fixed
// precedence order; the first failing rule determines the returned error:
// empty, then too long, then invalid characters.
func Parse(raw string) (Key, error) {
	if raw == "" {
		return Key{}, ErrKeyEmpty
	}
	if len(raw) > MaxKeyLength {
		return Key{}, ErrKeyTooLong
	}
	for _, r := range raw {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return Key{}, ErrKeyInvalidCharacters
		}
	}
	return Key{s: raw}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for
// hard-coded keys in tests and fixtures.
func MustParse(raw string) Key {
	k, err := Parse(raw)
	if err != nil {
		panic("types: MustParse(" + raw + "): " + err.Error())
	}
	return k
}

// String returns the underlying key string.
func (k Key) String() string {
	return k.s
}

// IsZero reports whether k is the (invalid) zero value.
func (k Key) IsZero() bool {
	return k.s == ""
}

// MarshalText implements encoding.TextMarshaler. A Key serializes to its
// plain string form.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Deserialization goes
// through the same validation as Parse, so an invalid string fails the
// decode instead of silently producing a bad Key.
func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalJSON encodes the key as a JSON string.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.s)
}

// UnmarshalJSON decodes a JSON string and validates it as a Key.
func (k *Key) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(raw))
}
