// Package trace provides per-run audit recording. Every phase of a run emits
// append-only events through a Recorder injected into the engine; there is no
// process-wide trace singleton, so concurrent runs never interleave.
package trace

import (
	"sync"
	"time"

	"github.com/turtacn/LeadScout/pkg/types/common"
)

// Event is one append-only audit record scoped to a single run.
type Event struct {
	RunID     common.ID       `json:"run_id"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Round     *int            `json:"round,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  common.Metadata `json:"metadata,omitempty"`
}

// Recorder collects events for one run. Implementations must be safe for
// concurrent use.
type Recorder interface {
	// Record appends one event. round may be nil for run-level events.
	Record(actor, action string, round *int, metadata common.Metadata)
	// Events returns a snapshot of everything recorded so far, in append
	// order.
	Events() []Event
}

// ─────────────────────────────────────────────────────────────────────────────
// In-memory recorder
// ─────────────────────────────────────────────────────────────────────────────

// MemoryRecorder is the default Recorder. It accumulates events in memory
// until the run finishes and the application layer persists them in one
// batch.
type MemoryRecorder struct {
	mu     sync.Mutex
	runID  common.ID
	events []Event
	now    func() time.Time
}

// NewMemoryRecorder builds an empty recorder for the given run.
func NewMemoryRecorder(runID common.ID) *MemoryRecorder {
	return &MemoryRecorder{runID: runID, now: time.Now}
}

// Record implements Recorder.
func (m *MemoryRecorder) Record(actor, action string, round *int, metadata common.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var r *int
	if round != nil {
		v := *round
		r = &v
	}
	m.events = append(m.events, Event{
		RunID:     m.runID,
		Actor:     actor,
		Action:    action,
		Round:     r,
		Timestamp: m.now().UTC(),
		Metadata:  metadata,
	})
}

// Events implements Recorder.
func (m *MemoryRecorder) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// NopRecorder discards everything. Useful for one-shot CLI runs where no
// audit trail is wanted.
type NopRecorder struct{}

func (NopRecorder) Record(string, string, *int, common.Metadata) {}
func (NopRecorder) Events() []Event                              { return nil }

//Personal.AI order the ending
