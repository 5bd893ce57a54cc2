// Package run defines the data-transfer objects exchanged between the HTTP
// interface layer and the run application service.
package run

import (
	"time"

	"github.com/turtacn/LeadScout/pkg/types/common"
)

// CreateRequest carries caller-supplied plan overrides.  All fields are
// optional; unset fields fall back to the configured plan defaults.
// Range validation happens at request binding, not inside the engine.
type CreateRequest struct {
	Rounds             *int     `json:"rounds,omitempty" binding:"omitempty,min=1,max=10"`
	CandidatesPerRound *int     `json:"candidates_per_round,omitempty" binding:"omitempty,min=10,max=200"`
	TopK               *int     `json:"top_k,omitempty" binding:"omitempty,min=1,max=20"`
	MaxViolations      *int     `json:"max_violations,omitempty" binding:"omitempty,min=0,max=5"`
	ScoringPenalty     *float64 `json:"scoring_penalty,omitempty" binding:"omitempty,min=0,max=1"`
}

// CreateResponse acknowledges an accepted run submission.
type CreateResponse struct {
	RunID   common.ID `json:"run_id"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}

// StatusResponse reports the current state of a run.
type StatusResponse struct {
	RunID           common.ID  `json:"run_id"`
	Status          string     `json:"status"`
	CurrentRound    int        `json:"current_round"`
	ProgressMessage string     `json:"progress_message,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	Plan            PlanDTO    `json:"plan"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// PlanDTO is the resolved run plan echoed back to callers.
type PlanDTO struct {
	Rounds             int     `json:"rounds"`
	CandidatesPerRound int     `json:"candidates_per_round"`
	TopK               int     `json:"top_k"`
	MaxViolations      int     `json:"max_violations"`
	ScoringPenalty     float64 `json:"scoring_penalty"`
}

// CandidateDTO is a single ranked candidate in a results response.
type CandidateDTO struct {
	Structure      string             `json:"structure"`
	Round          int                `json:"round"`
	Valid          bool               `json:"valid"`
	Descriptors    map[string]float64 `json:"descriptors,omitempty"`
	ViolationCount int                `json:"violation_count"`
	ViolatedRules  []string           `json:"violated_rules,omitempty"`
	Passed         bool               `json:"passed"`
	Score          float64            `json:"score"`
	Rank           int                `json:"rank"`
}

// ResultsResponse carries the final ranked candidate list of a completed run.
type ResultsResponse struct {
	RunID           common.ID      `json:"run_id"`
	Status          string         `json:"status"`
	Candidates      []CandidateDTO `json:"candidates"`
	TopCandidates   []CandidateDTO `json:"top_candidates"`
	TotalCandidates int            `json:"total_candidates"`
}

// TraceEventDTO is a single audit-trail entry.
type TraceEventDTO struct {
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Round     *int            `json:"round,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  common.Metadata `json:"metadata,omitempty"`
}

// TraceResponse carries the ordered audit trail of a run.
type TraceResponse struct {
	RunID       common.ID       `json:"run_id"`
	Events      []TraceEventDTO `json:"events"`
	TotalEvents int             `json:"total_events"`
}

//Personal.AI order the ending
