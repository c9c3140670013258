package observability

import (
	"sync"
	"testing"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("get", 200)
	m.RecordRequest("get", 404)
	m.RecordRequest("insert", 201)
	m.RecordRequest("", 503)

	ops := m.Operations()
	if ops["get"] != 2 {
		t.Errorf("expected 2 get requests, got %d", ops["get"])
	}
	if ops["insert"] != 1 {
		t.Errorf("expected 1 insert request, got %d", ops["insert"])
	}
	if _, ok := ops[""]; ok {
		t.Error("empty operation names must not be counted")
	}

	statuses := m.Statuses()
	if statuses["2xx"] != 2 {
		t.Errorf("expected 2 2xx responses, got %d", statuses["2xx"])
	}
	if statuses["4xx"] != 1 {
		t.Errorf("expected 1 4xx response, got %d", statuses["4xx"])
	}
	if statuses["5xx"] != 1 {
		t.Errorf("expected 1 5xx response, got %d", statuses["5xx"])
	}
}

func TestMetrics_SnapshotsAreCopies(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("get", 200)

	ops := m.Operations()
	ops["get"] = 99

	if m.Operations()["get"] != 1 {
		t.Error("mutating a snapshot must not affect the collector")
	}
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m := NewMetrics()
	const workers = 32

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordRequest("upsert", 200)
			}
		}()
	}
	wg.Wait()

	if got := m.Operations()["upsert"]; got != workers*100 {
		t.Errorf("expected %d upserts, got %d", workers*100, got)
	}
}
