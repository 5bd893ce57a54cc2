package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/LeadScout/internal/trace"
	appErrors "github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// TraceRepository
// ─────────────────────────────────────────────────────────────────────────────

// TraceRepository persists a run's append-only audit events.
type TraceRepository struct {
	pool   *pgxpool.Pool
	logger Logger
}

// NewTraceRepository constructs a ready-to-use TraceRepository.
func NewTraceRepository(pool *pgxpool.Pool, logger Logger) *TraceRepository {
	if logger == nil {
		logger = nopLogger{}
	}
	return &TraceRepository{pool: pool, logger: logger}
}

// BatchSave inserts all events in one COPY round-trip.
func (r *TraceRepository) BatchSave(ctx context.Context, events []trace.Event) error {
	r.logger.Debug("TraceRepository.BatchSave", "count", len(events))

	if len(events) == 0 {
		return nil
	}

	columns := []string{"run_id", "actor", "action", "round", "occurred_at", "metadata"}

	rows := make([][]interface{}, 0, len(events))
	for _, e := range events {
		metaJSON, _ := json.Marshal(e.Metadata)
		rows = append(rows, []interface{}{
			e.RunID, e.Actor, e.Action, e.Round, e.Timestamp, metaJSON,
		})
	}

	inserted, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"run_trace_events"},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		r.logger.Error("TraceRepository.BatchSave", "error", err)
		return appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to batch insert trace events")
	}

	r.logger.Debug("TraceRepository.BatchSave: done", "inserted", inserted)
	return nil
}

// FindByRunID returns a run's trace ordered by timestamp, then insertion
// order for identical timestamps.
func (r *TraceRepository) FindByRunID(ctx context.Context, runID common.ID) ([]trace.Event, error) {
	r.logger.Debug("TraceRepository.FindByRunID", "run_id", runID)

	rows, err := r.pool.Query(ctx, `
		SELECT run_id, actor, action, round, occurred_at, metadata
		FROM run_trace_events
		WHERE run_id = $1
		ORDER BY occurred_at ASC, id ASC`, runID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to query trace events")
	}
	defer rows.Close()

	var out []trace.Event
	for rows.Next() {
		var (
			e        trace.Event
			metaJSON []byte
		)
		if err := rows.Scan(&e.RunID, &e.Actor, &e.Action, &e.Round, &e.Timestamp, &metaJSON); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to scan trace row")
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &e.Metadata); err != nil {
				return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "corrupt trace metadata")
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

//Personal.AI order the ending
