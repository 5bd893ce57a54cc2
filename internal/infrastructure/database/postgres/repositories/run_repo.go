// Package repositories contains the PostgreSQL persistence layer for runs,
// their evaluated candidates, and their trace events.
package repositories

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	appErrors "github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// RunRepository
// ─────────────────────────────────────────────────────────────────────────────

// RunRepository is the PostgreSQL implementation of the run store.
type RunRepository struct {
	pool   *pgxpool.Pool
	logger Logger
}

// NewRunRepository constructs a ready-to-use RunRepository.
func NewRunRepository(pool *pgxpool.Pool, logger Logger) *RunRepository {
	if logger == nil {
		logger = nopLogger{}
	}
	return &RunRepository{pool: pool, logger: logger}
}

// Save inserts a freshly submitted run.
func (r *RunRepository) Save(ctx context.Context, run *runDomain.Run) error {
	r.logger.Debug("RunRepository.Save", "run_id", run.ID)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO runs (
			id, status, rounds, candidates_per_round, top_k,
			max_violations, scoring_penalty, current_round,
			progress_message, error_message,
			created_at, started_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		run.ID, string(run.Status),
		run.Plan.Rounds, run.Plan.CandidatesPerRound, run.Plan.TopK,
		run.Plan.MaxViolations, run.Plan.ScoringPenalty,
		run.CurrentRound, run.ProgressMessage, run.ErrorMessage,
		run.CreatedAt, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		r.logger.Error("RunRepository.Save", "error", err)
		return appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to insert run")
	}
	return nil
}

// UpdateState writes the mutable run fields back. Candidate and trace rows
// are append-only and handled by their own repositories.
func (r *RunRepository) UpdateState(ctx context.Context, run *runDomain.Run) error {
	r.logger.Debug("RunRepository.UpdateState", "run_id", run.ID, "status", run.Status)

	tag, err := r.pool.Exec(ctx, `
		UPDATE runs SET
			status = $2, current_round = $3, progress_message = $4,
			error_message = $5, started_at = $6, completed_at = $7
		WHERE id = $1`,
		run.ID, string(run.Status), run.CurrentRound, run.ProgressMessage,
		run.ErrorMessage, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		r.logger.Error("RunRepository.UpdateState", "error", err)
		return appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to update run state")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeRunNotFound, "run not found").
			WithDetail("run_id=" + run.ID.String())
	}
	return nil
}

// FindByID loads one run.
func (r *RunRepository) FindByID(ctx context.Context, id common.ID) (*runDomain.Run, error) {
	r.logger.Debug("RunRepository.FindByID", "run_id", id)

	row := r.pool.QueryRow(ctx, `
		SELECT id, status, rounds, candidates_per_round, top_k,
		       max_violations, scoring_penalty, current_round,
		       progress_message, error_message,
		       created_at, started_at, completed_at
		FROM runs WHERE id = $1`, id)

	var (
		run    runDomain.Run
		status string
	)
	err := row.Scan(
		&run.ID, &status,
		&run.Plan.Rounds, &run.Plan.CandidatesPerRound, &run.Plan.TopK,
		&run.Plan.MaxViolations, &run.Plan.ScoringPenalty,
		&run.CurrentRound, &run.ProgressMessage, &run.ErrorMessage,
		&run.CreatedAt, &run.StartedAt, &run.CompletedAt,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, appErrors.New(appErrors.ErrCodeRunNotFound, "run not found").
				WithDetail("run_id=" + id.String())
		}
		r.logger.Error("RunRepository.FindByID", "error", err)
		return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to load run")
	}
	run.Status = runDomain.Status(status)
	return &run, nil
}

// List returns runs newest first, paginated.
func (r *RunRepository) List(ctx context.Context, limit, offset int) ([]*runDomain.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, status, rounds, candidates_per_round, top_k,
		       max_violations, scoring_penalty, current_round,
		       progress_message, error_message,
		       created_at, started_at, completed_at
		FROM runs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to list runs")
	}
	defer rows.Close()

	var runs []*runDomain.Run
	for rows.Next() {
		var (
			run    runDomain.Run
			status string
		)
		if err := rows.Scan(
			&run.ID, &status,
			&run.Plan.Rounds, &run.Plan.CandidatesPerRound, &run.Plan.TopK,
			&run.Plan.MaxViolations, &run.Plan.ScoringPenalty,
			&run.CurrentRound, &run.ProgressMessage, &run.ErrorMessage,
			&run.CreatedAt, &run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to scan run row")
		}
		run.Status = runDomain.Status(status)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

//Personal.AI order the ending
