// Package server handles the HTTP API for the key-value store.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	v1 "github.com/atlaskv/atlaskv/api/v1"
	"github.com/atlaskv/atlaskv/internal/observability"
	"github.com/atlaskv/atlaskv/internal/store"
	"github.com/atlaskv/atlaskv/internal/types"
)

// Operation names used for request metrics.
const (
	opGet    = "get"
	opInsert = "insert"
	opUpsert = "upsert"
	opDelete = "delete"
	opList   = "list"
)

// Server is the HTTP server for the key-value store. It depends on the
// store.Store interface so the storage layer can be mocked in tests.
type Server struct {
	store   store.Store
	log     *observability.Logger
	metrics *observability.Metrics
	router  *http.ServeMux
	handler http.Handler
}

// New creates a new Server instance. maxInFlight bounds the number of
// concurrently handled requests; 0 means unlimited.
func New(st store.Store, log *observability.Logger, metrics *observability.Metrics, maxInFlight int) *Server {
	s := &Server{
		store:   st,
		log:     log,
		metrics: metrics,
		router:  http.NewServeMux(),
	}
	s.registerRoutes()
	s.handler = s.withRequestID(s.withLogging(s.withInFlightLimit(s.router, maxInFlight)))
	return s
}

// ServeHTTP makes our Server a standard http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// registerRoutes sets up the HTTP routing for the server.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/keys", s.handleKeys)
	s.router.HandleFunc("/keys/", s.handleKeyByName)
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/openapi.json", s.handleOpenAPI)
	s.router.HandleFunc("/stats", s.handleStats)
}

// handleKeys dispatches collection-level requests: list and create.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleList(w)
	case http.MethodPost:
		s.handleCreate(w, r)
	default:
		s.methodNotAllowed(w, r)
	}
}

// handleKeyByName dispatches requests addressing a single key. The raw path
// segment is validated into a types.Key before any store call; invalid keys
// never reach the storage layer.
func (s *Server) handleKeyByName(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/keys/")
	key, err := types.Parse(raw)
	if err != nil {
		s.writeError(w, "", http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, key)
	case http.MethodPut:
		s.handleUpsert(w, r, key)
	case http.MethodDelete:
		s.handleDelete(w, key)
	default:
		s.methodNotAllowed(w, r)
	}
}

// handleGet serves GET /keys/{key}.
func (s *Server) handleGet(w http.ResponseWriter, key types.Key) {
	rec, err := s.store.Get(key)
	if err != nil {
		s.writeStoreError(w, opGet, err)
		return
	}
	s.writeJSON(w, opGet, http.StatusOK, v1.ValueResponse{
		Value:    rec.Value,
		Metadata: rec.Metadata,
	})
}

// handleCreate serves POST /keys. The key inside the body goes through the
// same validation path as path keys, courtesy of types.Key's UnmarshalJSON.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req v1.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, opInsert, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Key.IsZero() {
		s.writeError(w, opInsert, http.StatusBadRequest, "VALIDATION_ERROR", types.ErrKeyEmpty.Error())
		return
	}

	rec, err := s.store.Insert(req.Key, req.Value)
	if err != nil {
		s.writeStoreError(w, opInsert, err)
		return
	}
	s.writeJSON(w, opInsert, http.StatusCreated, v1.KeyValueResponse{
		Key:      req.Key,
		Value:    rec.Value,
		Metadata: rec.Metadata,
	})
}

// handleUpsert serves PUT /keys/{key}. Upsert never fails on existence
// grounds, so the only error path here is a malformed body.
func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request, key types.Key) {
	var req v1.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, opUpsert, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rec := s.store.Upsert(key, req.Value)
	s.writeJSON(w, opUpsert, http.StatusOK, v1.KeyValueResponse{
		Key:      key,
		Value:    rec.Value,
		Metadata: rec.Metadata,
	})
}

// handleDelete serves DELETE /keys/{key}, returning the removed record.
func (s *Server) handleDelete(w http.ResponseWriter, key types.Key) {
	rec, err := s.store.Delete(key)
	if err != nil {
		s.writeStoreError(w, opDelete, err)
		return
	}
	s.writeJSON(w, opDelete, http.StatusOK, v1.ValueResponse{
		Value:    rec.Value,
		Metadata: rec.Metadata,
	})
}

// handleList serves GET /keys as a plain array of key strings.
func (s *Server) handleList(w http.ResponseWriter) {
	keys := s.store.ListKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	s.writeJSON(w, opList, http.StatusOK, names)
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleStats serves GET /stats with the in-memory request counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.writeJSON(w, "", http.StatusOK, v1.StatsResponse{
		Keys:     len(s.store.ListKeys()),
		Requests: s.metrics.Operations(),
		Statuses: s.metrics.Statuses(),
	})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, "", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
		"Method "+r.Method+" is not allowed on "+r.URL.Path)
}

// writeStoreError maps a typed store error onto its HTTP status and the
// error envelope. Conflict and not-found are expected outcomes, so they are
// logged at debug, never as faults.
func (s *Server) writeStoreError(w http.ResponseWriter, op string, err error) {
	var serr *store.Error
	if !errors.As(err, &serr) {
		// The store's error set is closed; anything else is a programming
		// error surfaced as a 500 so it cannot pass silently.
		s.log.Error("unexpected store error", "error", err)
		s.writeError(w, op, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	status := http.StatusNotFound
	if serr.Kind == store.KeyAlreadyExists {
		status = http.StatusConflict
	}
	s.log.Debug("store conflict", "op", op, "key", serr.Key.String(), "code", serr.Code())
	s.writeError(w, op, status, serr.Code(), serr.Error())
}

// writeJSON writes a success payload and records the request metric.
func (s *Server) writeJSON(w http.ResponseWriter, op string, status int, payload any) {
	s.metrics.RecordRequest(op, status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

// writeError writes the error envelope and records the request metric.
func (s *Server) writeError(w http.ResponseWriter, op string, status int, code, message string) {
	s.metrics.RecordRequest(op, status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := v1.ErrorResponse{
		Error: v1.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode error response", "error", err)
	}
}
