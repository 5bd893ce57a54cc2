package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
	appErrors "github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// CandidateRepository
// ─────────────────────────────────────────────────────────────────────────────

// CandidateRepository persists the globally ranked evaluated candidates of a
// completed run. Rows are append-only; a run's candidates are written once.
type CandidateRepository struct {
	pool   *pgxpool.Pool
	logger Logger
}

// NewCandidateRepository constructs a ready-to-use CandidateRepository.
func NewCandidateRepository(pool *pgxpool.Pool, logger Logger) *CandidateRepository {
	if logger == nil {
		logger = nopLogger{}
	}
	return &CandidateRepository{pool: pool, logger: logger}
}

// BatchSave inserts all candidates in a single round-trip using the
// PostgreSQL COPY protocol.
func (r *CandidateRepository) BatchSave(ctx context.Context, runID common.ID, cands []candidate.Evaluated) error {
	r.logger.Debug("CandidateRepository.BatchSave", "run_id", runID, "count", len(cands))

	if len(cands) == 0 {
		return nil
	}

	columns := []string{
		"run_id", "rank", "structure", "round", "descriptors",
		"violation_count", "violated_rules", "passed", "score",
	}

	rows := make([][]interface{}, 0, len(cands))
	for _, c := range cands {
		descJSON, _ := json.Marshal(c.Descriptors)
		rows = append(rows, []interface{}{
			runID, c.Rank, c.Structure, c.Round, descJSON,
			c.ViolationCount, c.ViolatedRules, c.Passed, c.Score,
		})
	}

	inserted, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"run_candidates"},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		r.logger.Error("CandidateRepository.BatchSave", "error", err)
		return appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to batch insert candidates")
	}

	r.logger.Debug("CandidateRepository.BatchSave: done", "inserted", inserted)
	return nil
}

// FindByRunID returns a run's candidates ordered by global rank.
func (r *CandidateRepository) FindByRunID(ctx context.Context, runID common.ID) ([]candidate.Evaluated, error) {
	r.logger.Debug("CandidateRepository.FindByRunID", "run_id", runID)

	rows, err := r.pool.Query(ctx, `
		SELECT rank, structure, round, descriptors,
		       violation_count, violated_rules, passed, score
		FROM run_candidates
		WHERE run_id = $1
		ORDER BY rank ASC`, runID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to query candidates")
	}
	defer rows.Close()

	var out []candidate.Evaluated
	for rows.Next() {
		var (
			c        candidate.Evaluated
			descJSON []byte
		)
		if err := rows.Scan(
			&c.Rank, &c.Structure, &c.Round, &descJSON,
			&c.ViolationCount, &c.ViolatedRules, &c.Passed, &c.Score,
		); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to scan candidate row")
		}
		if len(descJSON) > 0 {
			if err := json.Unmarshal(descJSON, &c.Descriptors); err != nil {
				return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "corrupt descriptor payload")
			}
		}
		c.Valid = true
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByRunID returns how many candidate rows a run persisted.
func (r *CandidateRepository) CountByRunID(ctx context.Context, runID common.ID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM run_candidates WHERE run_id = $1`, runID).Scan(&count)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to count candidates")
	}
	return count, nil
}

//Personal.AI order the ending
