// Package eventlog provides the append-only JSON audit trail written once per
// prediction and once per knockout. The Recorder capability is injected into
// the components so tests can capture records without touching files.
package eventlog

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Event is one audit record. Fields are flattened into the encoded object
// next to the timestamp, task_uuid and action_type keys.
type Event struct {
	Action string
	Fields map[string]any
}

type Recorder interface {
	Record(e Event)
}

// FileRecorder appends one JSON line per event. Writes are serialized so
// concurrent tool calls never interleave records.
type FileRecorder struct {
	mu sync.Mutex
	f  *os.File
}

func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{f: f}, nil
}

func (r *FileRecorder) Record(e Event) {
	rec := make(map[string]any, len(e.Fields)+3)
	for k, v := range e.Fields {
		rec[k] = v
	}
	rec["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	rec["task_uuid"] = uuid.NewString()
	rec["action_type"] = e.Action

	data, err := json.Marshal(rec)
	if err != nil {
		slog.Error("failed to encode audit record", "action", e.Action, "error", err)
		return
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.f.Write(data); err != nil {
		slog.Error("failed to write audit record", "action", e.Action, "error", err)
	}
}

func (r *FileRecorder) Close() error {
	return r.f.Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Record(Event) {}

// Memory keeps events in order for test assertions.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func (m *Memory) Record(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
