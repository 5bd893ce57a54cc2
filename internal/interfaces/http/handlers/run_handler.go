package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/trace"
	"github.com/turtacn/LeadScout/pkg/types/common"
	runTypes "github.com/turtacn/LeadScout/pkg/types/run"
)

// RunService is the application-layer surface the run endpoints depend on.
type RunService interface {
	Submit(ctx context.Context, overrides runDomain.PlanOverrides) (*runDomain.Run, error)
	Status(ctx context.Context, id common.ID) (*runDomain.Run, error)
	Results(ctx context.Context, id common.ID) (*runDomain.Run, []candidate.Evaluated, []candidate.Evaluated, error)
	Trace(ctx context.Context, id common.ID) ([]trace.Event, error)
}

// RunHandler serves the optimization-run endpoints.
type RunHandler struct {
	service RunService
}

func NewRunHandler(service RunService) *RunHandler {
	return &RunHandler{service: service}
}

// Create accepts a run submission and returns 202 Accepted.  The run executes
// in the background; callers poll the status endpoint for progress.
//
// POST /api/v1/runs
func (h *RunHandler) Create(c *gin.Context) {
	var req runTypes.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	overrides := runDomain.PlanOverrides{
		Rounds:             req.Rounds,
		CandidatesPerRound: req.CandidatesPerRound,
		TopK:               req.TopK,
		MaxViolations:      req.MaxViolations,
		ScoringPenalty:     req.ScoringPenalty,
	}

	r, err := h.service.Submit(c.Request.Context(), overrides)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusAccepted, runTypes.CreateResponse{
		RunID:   r.ID,
		Status:  string(r.Status),
		Message: "run accepted",
	})
}

// Status reports the current state of a run.
//
// GET /api/v1/runs/:id/status
func (h *RunHandler) Status(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	r, err := h.service.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, toStatusResponse(r))
}

// Results returns the final ranked candidates of a completed run.
//
// GET /api/v1/runs/:id/results
func (h *RunHandler) Results(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	r, all, top, err := h.service.Results(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, runTypes.ResultsResponse{
		RunID:           r.ID,
		Status:          string(r.Status),
		Candidates:      toCandidateDTOs(all),
		TopCandidates:   toCandidateDTOs(top),
		TotalCandidates: len(all),
	})
}

// Trace returns the ordered audit trail of a run.
//
// GET /api/v1/runs/:id/trace
func (h *RunHandler) Trace(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	events, err := h.service.Trace(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := make([]runTypes.TraceEventDTO, 0, len(events))
	for _, ev := range events {
		dtos = append(dtos, runTypes.TraceEventDTO{
			Actor:     ev.Actor,
			Action:    ev.Action,
			Round:     ev.Round,
			Timestamp: ev.Timestamp,
			Metadata:  ev.Metadata,
		})
	}

	respond(c, http.StatusOK, runTypes.TraceResponse{
		RunID:       id,
		Events:      dtos,
		TotalEvents: len(dtos),
	})
}

func toStatusResponse(r *runDomain.Run) runTypes.StatusResponse {
	return runTypes.StatusResponse{
		RunID:           r.ID,
		Status:          string(r.Status),
		CurrentRound:    r.CurrentRound,
		ProgressMessage: r.ProgressMessage,
		ErrorMessage:    r.ErrorMessage,
		Plan: runTypes.PlanDTO{
			Rounds:             r.Plan.Rounds,
			CandidatesPerRound: r.Plan.CandidatesPerRound,
			TopK:               r.Plan.TopK,
			MaxViolations:      r.Plan.MaxViolations,
			ScoringPenalty:     r.Plan.ScoringPenalty,
		},
		CreatedAt:   r.CreatedAt,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
	}
}

func toCandidateDTOs(cands []candidate.Evaluated) []runTypes.CandidateDTO {
	dtos := make([]runTypes.CandidateDTO, 0, len(cands))
	for _, ec := range cands {
		dtos = append(dtos, runTypes.CandidateDTO{
			Structure:      ec.Structure,
			Round:          ec.Round,
			Valid:          ec.Valid,
			Descriptors:    ec.Descriptors,
			ViolationCount: ec.ViolationCount,
			ViolatedRules:  ec.ViolatedRules,
			Passed:         ec.Passed,
			Score:          ec.Score,
			Rank:           ec.Rank,
		})
	}
	return dtos
}

//Personal.AI order the ending
