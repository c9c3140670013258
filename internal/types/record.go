package types

import "time"

// Metadata carries the timestamp bookkeeping for a stored record. Both
// timestamps are UTC and serialize as RFC 3339 strings. CreatedAt is set once
// when the key first appears and never changes; UpdatedAt is refreshed on
// every successful mutation, including the creating one, so a freshly created
// record has CreatedAt == UpdatedAt.
type Metadata struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record is the stored value together with its metadata. The store owns the
// Record for a key exclusively; no entry outlives its key's presence in the
// map. The value is an arbitrary string with no format constraint.
type Record struct {
	Value    string   `json:"value"`
	Metadata Metadata `json:"metadata"`
}
