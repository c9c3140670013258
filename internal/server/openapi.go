package server

import (
	"encoding/json"
	"net/http"
	"sync"
)

var (
	openAPIOnce sync.Once
	openAPIJSON []byte
)

// handleOpenAPI serves the OpenAPI 3.0 document for the API. The document is
// static, so it is built and marshaled once.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	openAPIOnce.Do(func() {
		openAPIJSON, _ = json.Marshal(openAPIDocument())
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIJSON)
}

// openAPIDocument describes the HTTP surface of the store.
func openAPIDocument() map[string]any {
	keyParam := map[string]any{
		"name":        "key",
		"in":          "path",
		"required":    true,
		"description": "Unique key identifier (alphanumeric, hyphens, underscores, 1-255 chars)",
		"schema":      map[string]any{"$ref": "#/components/schemas/Key"},
	}

	jsonBody := func(ref string) map[string]any {
		return map[string]any{
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": ref},
				},
			},
		}
	}
	response := func(description, ref string) map[string]any {
		r := map[string]any{"description": description}
		if ref != "" {
			r["content"] = map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": ref},
				},
			}
		}
		return r
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "atlaskv API",
			"version":     "0.1.0",
			"description": "A lightweight in-memory key-value store with automatic timestamp metadata. Provides CRUD operations over string key-value pairs.",
		},
		"tags": []map[string]any{
			{"name": "Health", "description": "Service health check endpoints"},
			{"name": "Keys - Read Operations", "description": "Endpoints for reading key-value data"},
			{"name": "Keys - Write Operations", "description": "Endpoints for creating, updating, and deleting key-value data"},
		},
		"paths": map[string]any{
			"/health": map[string]any{
				"get": map[string]any{
					"tags":    []string{"Health"},
					"summary": "Health check",
					"responses": map[string]any{
						"200": map[string]any{"description": "Service is healthy"},
					},
				},
			},
			"/keys": map[string]any{
				"get": map[string]any{
					"tags":        []string{"Keys - Read Operations"},
					"summary":     "List all keys",
					"description": "Returns an array of all keys currently stored.",
					"responses": map[string]any{
						"200": map[string]any{
							"description": "List of all keys in the store",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{
										"type":  "array",
										"items": map[string]any{"$ref": "#/components/schemas/Key"},
									},
								},
							},
						},
					},
				},
				"post": map[string]any{
					"tags":        []string{"Keys - Write Operations"},
					"summary":     "Create new key-value pair",
					"description": "Creates a new key-value pair. Returns 409 if the key already exists; use PUT to update existing keys.",
					"requestBody": jsonBody("#/components/schemas/CreateRequest"),
					"responses": map[string]any{
						"201": response("Key-value pair created successfully", "#/components/schemas/KeyValueResponse"),
						"400": response("Invalid key format or malformed body", "#/components/schemas/ErrorResponse"),
						"409": response("Key already exists - use PUT to update", "#/components/schemas/ErrorResponse"),
					},
				},
			},
			"/keys/{key}": map[string]any{
				"get": map[string]any{
					"tags":       []string{"Keys - Read Operations"},
					"summary":    "Get value by key",
					"parameters": []map[string]any{keyParam},
					"responses": map[string]any{
						"200": response("Successfully retrieved value", "#/components/schemas/ValueResponse"),
						"404": response("Key not found", "#/components/schemas/ErrorResponse"),
					},
				},
				"put": map[string]any{
					"tags":        []string{"Keys - Write Operations"},
					"summary":     "Update or create key-value pair",
					"description": "Upsert: updates an existing pair or creates it if absent. Preserves the original created_at timestamp on update.",
					"parameters":  []map[string]any{keyParam},
					"requestBody": jsonBody("#/components/schemas/UpdateRequest"),
					"responses": map[string]any{
						"200": response("Key-value pair updated or created", "#/components/schemas/KeyValueResponse"),
						"400": response("Invalid key format or malformed body", "#/components/schemas/ErrorResponse"),
					},
				},
				"delete": map[string]any{
					"tags":        []string{"Keys - Write Operations"},
					"summary":     "Delete key-value pair",
					"description": "Removes a key-value pair and returns the deleted value with its metadata.",
					"parameters":  []map[string]any{keyParam},
					"responses": map[string]any{
						"200": response("Key-value pair deleted, returns the deleted value", "#/components/schemas/ValueResponse"),
						"404": response("Key not found - nothing to delete", "#/components/schemas/ErrorResponse"),
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Key": map[string]any{
					"type":      "string",
					"minLength": 1,
					"maxLength": 255,
					"pattern":   "^[\\p{L}\\p{N}_-]+$",
				},
				"Metadata": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"created_at": map[string]any{"type": "string", "format": "date-time"},
						"updated_at": map[string]any{"type": "string", "format": "date-time"},
					},
					"required": []string{"created_at", "updated_at"},
				},
				"CreateRequest": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key":   map[string]any{"$ref": "#/components/schemas/Key"},
						"value": map[string]any{"type": "string"},
					},
					"required": []string{"key", "value"},
				},
				"UpdateRequest": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"value": map[string]any{"type": "string"},
					},
					"required": []string{"value"},
				},
				"KeyValueResponse": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key":      map[string]any{"$ref": "#/components/schemas/Key"},
						"value":    map[string]any{"type": "string"},
						"metadata": map[string]any{"$ref": "#/components/schemas/Metadata"},
					},
					"required": []string{"key", "value", "metadata"},
				},
				"ValueResponse": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"value":    map[string]any{"type": "string"},
						"metadata": map[string]any{"$ref": "#/components/schemas/Metadata"},
					},
					"required": []string{"value", "metadata"},
				},
				"ErrorResponse": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"$ref": "#/components/schemas/ErrorDetail"},
					},
					"required": []string{"error"},
				},
				"ErrorDetail": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"code":    map[string]any{"type": "string"},
						"message": map[string]any{"type": "string"},
					},
					"required": []string{"code", "message"},
				},
			},
		},
	}
}
