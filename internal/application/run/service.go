// Package run provides the application-level service for optimization runs.
// It owns the submit/execute lifecycle: plan resolution, background
// execution, persistence, caching, event publishing, and result retrieval.
package run

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/engine"
	redisinfra "github.com/turtacn/LeadScout/internal/infrastructure/database/redis"
	kafkainfra "github.com/turtacn/LeadScout/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	prominfra "github.com/turtacn/LeadScout/internal/infrastructure/monitoring/prometheus"
	miniostorage "github.com/turtacn/LeadScout/internal/infrastructure/storage/minio"
	"github.com/turtacn/LeadScout/internal/trace"
	"github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Store contracts
// ─────────────────────────────────────────────────────────────────────────────

// RunStore persists run aggregates.
type RunStore interface {
	Save(ctx context.Context, run *runDomain.Run) error
	UpdateState(ctx context.Context, run *runDomain.Run) error
	FindByID(ctx context.Context, id common.ID) (*runDomain.Run, error)
}

// CandidateStore persists and loads a run's ranked candidates.
type CandidateStore interface {
	BatchSave(ctx context.Context, runID common.ID, cands []candidate.Evaluated) error
	FindByRunID(ctx context.Context, runID common.ID) ([]candidate.Evaluated, error)
}

// TraceStore persists and loads a run's audit events.
type TraceStore interface {
	BatchSave(ctx context.Context, events []trace.Event) error
	FindByRunID(ctx context.Context, runID common.ID) ([]trace.Event, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Service orchestrates run submission and retrieval. The cache, producer,
// archiver, and metrics are optional; their nil forms are no-ops.
type Service struct {
	engine     *engine.Engine
	runs       RunStore
	candidates CandidateStore
	traces     TraceStore

	cache    *redisinfra.StateCache
	producer *kafkainfra.Producer
	archiver *miniostorage.Archiver
	metrics  *prominfra.Metrics

	logger     logging.Logger
	defaults   runDomain.Plan
	runTimeout time.Duration

	wg sync.WaitGroup
}

// Options carries the optional collaborators for NewService.
type Options struct {
	Cache      *redisinfra.StateCache
	Producer   *kafkainfra.Producer
	Archiver   *miniostorage.Archiver
	Metrics    *prominfra.Metrics
	RunTimeout time.Duration
}

// NewService wires a Service.
func NewService(eng *engine.Engine, runs RunStore, cands CandidateStore, traces TraceStore,
	defaults runDomain.Plan, log logging.Logger, opts Options) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	timeout := opts.RunTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Service{
		engine:     eng,
		runs:       runs,
		candidates: cands,
		traces:     traces,
		cache:      opts.Cache,
		producer:   opts.Producer,
		archiver:   opts.Archiver,
		metrics:    opts.Metrics,
		logger:     log.Named("run-service"),
		defaults:   defaults,
		runTimeout: timeout,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Submit
// ─────────────────────────────────────────────────────────────────────────────

// Submit resolves the plan, persists the queued run, and starts execution in
// the background. It returns as soon as the run is accepted.
func (s *Service) Submit(ctx context.Context, overrides runDomain.PlanOverrides) (*runDomain.Run, error) {
	plan, err := runDomain.ResolvePlan(overrides, s.defaults)
	if err != nil {
		return nil, err
	}

	r := runDomain.New(plan)
	if err := s.runs.Save(ctx, r); err != nil {
		return nil, err
	}
	s.putCache(ctx, r)

	s.publish(ctx, kafkainfra.TopicRunSubmitted, r.ID, "run.submitted", map[string]interface{}{
		"run_id": r.ID,
		"plan":   plan,
	})

	s.logger.Info("run submitted",
		logging.String("run_id", r.ID.String()),
		logging.Int("rounds", plan.Rounds))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(r)
	}()

	return r, nil
}

// execute drives one run to a terminal state. It runs on its own context so
// the submitting request can return immediately.
func (s *Service) execute(r *runDomain.Run) {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	recorder := trace.NewMemoryRecorder(r.ID)
	started := time.Now()

	recorder.Record("planner", "plan resolved", nil, common.Metadata{
		"rounds":               r.Plan.Rounds,
		"candidates_per_round": r.Plan.CandidatesPerRound,
		"top_k":                r.Plan.TopK,
		"max_violations":       r.Plan.MaxViolations,
		"scoring_penalty":      r.Plan.ScoringPenalty,
	})

	if err := r.Start(); err != nil {
		s.logger.Error("run could not start", logging.Err(err))
		return
	}
	s.persistState(ctx, r)
	s.metrics.RecordRunStarted()

	progress := func(round int, message string) {
		r.Progress(round, message)
		s.putCache(ctx, r)
	}

	outcome, err := s.engine.Execute(ctx, r.ID, r.Plan, recorder, progress)
	if err != nil {
		s.fail(ctx, r, recorder, err)
		return
	}

	if err := s.candidates.BatchSave(ctx, r.ID, outcome.Candidates); err != nil {
		s.fail(ctx, r, recorder, err)
		return
	}

	if err := r.Complete(); err != nil {
		s.logger.Error("run completion transition failed", logging.Err(err))
		return
	}
	s.persistState(ctx, r)
	s.persistTrace(ctx, recorder)
	s.metrics.RecordRunCompleted(time.Since(started).Seconds())
	s.metrics.RecordCandidates(
		r.Plan.Rounds*r.Plan.CandidatesPerRound,
		len(outcome.Candidates),
		outcome.InvalidCount,
	)

	if err := s.archiver.ArchiveResults(ctx, r.ID, outcome.Candidates); err != nil {
		// The archive is a convenience artifact; the run stays completed.
		s.logger.Warn("results archive failed",
			logging.String("run_id", r.ID.String()),
			logging.Err(err))
	}

	s.publish(ctx, kafkainfra.TopicRunCompleted, r.ID, "run.completed", map[string]interface{}{
		"run_id":           r.ID,
		"total_candidates": len(outcome.Candidates),
	})

	s.logger.Info("run completed",
		logging.String("run_id", r.ID.String()),
		logging.Int("candidates", len(outcome.Candidates)),
		logging.Duration("elapsed", time.Since(started)))
}

// fail moves the run to its terminal failed state. Candidates from the
// failing round are never written; the trace is kept for audit.
func (s *Service) fail(ctx context.Context, r *runDomain.Run, recorder trace.Recorder, cause error) {
	msg := cause.Error()
	if appErr, ok := cause.(*errors.AppError); ok {
		msg = appErr.Message
	}

	if err := r.Fail(msg); err != nil {
		s.logger.Error("run failure transition failed", logging.Err(err))
		return
	}
	recorder.Record("engine", "run failed", nil, common.Metadata{"error": msg})

	s.persistState(ctx, r)
	s.persistTrace(ctx, recorder)
	s.metrics.RecordRunFailed()

	s.publish(ctx, kafkainfra.TopicRunFailed, r.ID, "run.failed", map[string]interface{}{
		"run_id": r.ID,
		"error":  msg,
	})

	s.logger.Error("run failed",
		logging.String("run_id", r.ID.String()),
		logging.Err(cause))
}

// ─────────────────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────────────────

// Status returns the current run state, cache-first with database fallback.
// The cached view may lag the engine slightly but only ever moves forward.
func (s *Service) Status(ctx context.Context, id common.ID) (*runDomain.Run, error) {
	r, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cached, cerr := s.cache.Get(ctx, id); cerr == nil {
		r.Status = cached.Status
		r.CurrentRound = cached.CurrentRound
		r.ProgressMessage = cached.ProgressMessage
		if cached.ErrorMessage != "" {
			r.ErrorMessage = cached.ErrorMessage
		}
	}
	return r, nil
}

// Results returns the globally ranked candidates of a completed run, plus
// the top-K slice. Runs not yet completed are rejected.
func (s *Service) Results(ctx context.Context, id common.ID) (*runDomain.Run, []candidate.Evaluated, []candidate.Evaluated, error) {
	r, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if r.Status != runDomain.StatusCompleted {
		return nil, nil, nil, errors.New(errors.ErrCodeRunNotCompleted,
			fmt.Sprintf("run is %s, results are only available for completed runs", r.Status))
	}

	cands, err := s.candidates.FindByRunID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}

	topN := r.Plan.TopK
	if topN > len(cands) {
		topN = len(cands)
	}
	return r, cands, cands[:topN], nil
}

// Trace returns a run's audit events in timestamp order.
func (s *Service) Trace(ctx context.Context, id common.ID) ([]trace.Event, error) {
	if _, err := s.runs.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.traces.FindByRunID(ctx, id)
}

// Wait blocks until all in-flight runs have reached a terminal state. Used
// during graceful shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func (s *Service) persistState(ctx context.Context, r *runDomain.Run) {
	if err := s.runs.UpdateState(ctx, r); err != nil {
		s.logger.Error("run state update failed",
			logging.String("run_id", r.ID.String()),
			logging.Err(err))
	}
	s.putCache(ctx, r)
}

func (s *Service) putCache(ctx context.Context, r *runDomain.Run) {
	err := s.cache.Put(ctx, r.ID, redisinfra.CachedState{
		Status:          r.Status,
		CurrentRound:    r.CurrentRound,
		ProgressMessage: r.ProgressMessage,
		ErrorMessage:    r.ErrorMessage,
		UpdatedAt:       time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("run state cache write failed",
			logging.String("run_id", r.ID.String()),
			logging.Err(err))
	}
}

func (s *Service) persistTrace(ctx context.Context, recorder trace.Recorder) {
	events := recorder.Events()
	if err := s.traces.BatchSave(ctx, events); err != nil {
		s.logger.Error("trace persistence failed", logging.Err(err))
		return
	}
	for _, e := range events {
		s.publish(ctx, kafkainfra.TopicRunTrace, e.RunID, "run.trace", e)
	}
}

func (s *Service) publish(ctx context.Context, topic string, runID common.ID, eventType string, payload interface{}) {
	if err := s.producer.Publish(ctx, topic, runID.String(), eventType, payload); err != nil {
		s.logger.Warn("event publish failed",
			logging.String("topic", topic),
			logging.Err(err))
	}
}

//Personal.AI order the ending
