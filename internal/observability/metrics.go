package observability

import "sync"

// Metrics collects in-memory request counters. Counters are keyed twice:
// by operation name (get, insert, upsert, delete, list) and by status class
// ("2xx", "4xx", ...). Volatile like the rest of the process.
type Metrics struct {
	mu         sync.RWMutex
	operations map[string]int64
	statuses   map[string]int64
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: make(map[string]int64),
		statuses:   make(map[string]int64),
	}
}

// RecordRequest counts one handled request for an operation with the given
// HTTP status code.
func (m *Metrics) RecordRequest(op string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if op != "" {
		m.operations[op]++
	}
	m.statuses[statusClass(status)]++
}

// Operations returns a copy of the per-operation counters.
func (m *Metrics) Operations() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.operations))
	for k, v := range m.operations {
		out[k] = v
	}
	return out
}

// Statuses returns a copy of the per-status-class counters.
func (m *Metrics) Statuses() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.statuses))
	for k, v := range m.statuses {
		out[k] = v
	}
	return out
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
