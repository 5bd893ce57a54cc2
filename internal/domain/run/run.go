// Package run holds the Run aggregate and its immutable execution plan. A
// run owns its lifecycle: queued on submission, running while the engine
// iterates, and completed or failed at the end. Terminal states are
// absorbing.
package run

import (
	"fmt"
	"time"

	"github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Status
// ─────────────────────────────────────────────────────────────────────────────

// Status is the lifecycle state of a run.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Plan
// ─────────────────────────────────────────────────────────────────────────────

// Plan is the per-run configuration, resolved once at submission and never
// mutated afterwards.
type Plan struct {
	Rounds             int     `json:"rounds"`
	CandidatesPerRound int     `json:"candidates_per_round"`
	TopK               int     `json:"top_k"`
	MaxViolations      int     `json:"max_violations"`
	ScoringPenalty     float64 `json:"scoring_penalty"`
}

// Validate checks the minimal structural constraints the engine relies on.
// Range caps beyond these are the transport layer's concern.
func (p Plan) Validate() error {
	if p.Rounds < 1 {
		return errors.New(errors.ErrCodePlanInvalid, "rounds must be at least 1")
	}
	if p.CandidatesPerRound < 1 {
		return errors.New(errors.ErrCodePlanInvalid, "candidates_per_round must be at least 1")
	}
	if p.TopK < 1 {
		return errors.New(errors.ErrCodePlanInvalid, "top_k must be at least 1")
	}
	if p.MaxViolations < 0 {
		return errors.New(errors.ErrCodePlanInvalid, "max_violations must not be negative")
	}
	if p.ScoringPenalty < 0 {
		return errors.New(errors.ErrCodePlanInvalid, "scoring_penalty must not be negative")
	}
	return nil
}

// PlanOverrides carries the caller's optional plan fields. Nil means "use the
// configured default".
type PlanOverrides struct {
	Rounds             *int
	CandidatesPerRound *int
	TopK               *int
	MaxViolations      *int
	ScoringPenalty     *float64
}

// ResolvePlan merges caller overrides onto the configured defaults and
// validates the result.
func ResolvePlan(overrides PlanOverrides, defaults Plan) (Plan, error) {
	plan := defaults
	if overrides.Rounds != nil {
		plan.Rounds = *overrides.Rounds
	}
	if overrides.CandidatesPerRound != nil {
		plan.CandidatesPerRound = *overrides.CandidatesPerRound
	}
	if overrides.TopK != nil {
		plan.TopK = *overrides.TopK
	}
	if overrides.MaxViolations != nil {
		plan.MaxViolations = *overrides.MaxViolations
	}
	if overrides.ScoringPenalty != nil {
		plan.ScoringPenalty = *overrides.ScoringPenalty
	}
	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Run aggregate
// ─────────────────────────────────────────────────────────────────────────────

// Run is the aggregate root for one optimization run.
type Run struct {
	ID              common.ID  `json:"id"`
	Plan            Plan       `json:"plan"`
	Status          Status     `json:"status"`
	CurrentRound    int        `json:"current_round"`
	ProgressMessage string     `json:"progress_message"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// New builds a queued run for the given plan.
func New(plan Plan) *Run {
	return &Run{
		ID:              common.NewID(),
		Plan:            plan,
		Status:          StatusQueued,
		CurrentRound:    0,
		ProgressMessage: "queued",
		CreatedAt:       time.Now().UTC(),
	}
}

// Start transitions queued → running.
func (r *Run) Start() error {
	if r.Status != StatusQueued {
		return r.conflict(StatusRunning)
	}
	now := time.Now().UTC()
	r.Status = StatusRunning
	r.StartedAt = &now
	r.ProgressMessage = "running"
	return nil
}

// Complete transitions running → completed.
func (r *Run) Complete() error {
	if r.Status != StatusRunning {
		return r.conflict(StatusCompleted)
	}
	now := time.Now().UTC()
	r.Status = StatusCompleted
	r.CompletedAt = &now
	r.ProgressMessage = "completed"
	return nil
}

// Fail transitions running (or queued, for pre-flight failures) → failed.
func (r *Run) Fail(message string) error {
	if r.Status.Terminal() {
		return r.conflict(StatusFailed)
	}
	now := time.Now().UTC()
	r.Status = StatusFailed
	r.CompletedAt = &now
	r.ErrorMessage = message
	r.ProgressMessage = "failed"
	return nil
}

// Progress updates the externally observable mid-run checkpoint fields.
func (r *Run) Progress(round int, message string) {
	r.CurrentRound = round
	r.ProgressMessage = message
}

func (r *Run) conflict(target Status) error {
	return errors.New(errors.ErrCodeRunStateConflict,
		fmt.Sprintf("run %s cannot move from %s to %s", r.ID, r.Status, target))
}

//Personal.AI order the ending
