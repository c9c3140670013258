// Package v1 defines the JSON wire types of the HTTP API.
package v1

import "github.com/atlaskv/atlaskv/internal/types"

// CreateRequest is the body of POST /keys. The key is validated during JSON
// decoding, so a handler holding a CreateRequest holds a valid key.
type CreateRequest struct {
	Key   types.Key `json:"key"`
	Value string    `json:"value"`
}

// UpdateRequest is the body of PUT /keys/{key}.
type UpdateRequest struct {
	Value string `json:"value"`
}

// KeyValueResponse is the success body of POST /keys and PUT /keys/{key}.
type KeyValueResponse struct {
	Key      types.Key      `json:"key"`
	Value    string         `json:"value"`
	Metadata types.Metadata `json:"metadata"`
}

// ValueResponse is the success body of GET /keys/{key} and DELETE /keys/{key}.
type ValueResponse struct {
	Value    string         `json:"value"`
	Metadata types.Metadata `json:"metadata"`
}

// ErrorDetail is the machine-readable error payload.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope returned by every failing endpoint:
// {"error":{"code":...,"message":...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Keys     int              `json:"keys"`
	Requests map[string]int64 `json:"requests"`
	Statuses map[string]int64 `json:"statuses"`
}
