// Package engine implements the iterative optimization loop: generate
// candidates, evaluate them against the oracle, filter by admission rules,
// rank, and reseed the next round from the elite set. The engine is pure
// orchestration; persistence and transport live above it.
package engine

import (
	"context"
	"fmt"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
	"github.com/turtacn/LeadScout/internal/domain/generation"
	"github.com/turtacn/LeadScout/internal/domain/ranking"
	"github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/domain/screening"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LeadScout/internal/oracle"
	"github.com/turtacn/LeadScout/internal/trace"
	"github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ProgressFunc receives checkpoint updates as the run advances. round is the
// 1-based current round. Implementations must tolerate being called from the
// engine's goroutine.
type ProgressFunc func(round int, message string)

// Outcome is the result of a completed run: the admitted candidates from all
// rounds, globally ranked, plus audit counters.
type Outcome struct {
	Candidates   []candidate.Evaluated
	RoundsRun    int
	InvalidCount int
}

// Engine drives one run at a time per Execute call. It is stateless between
// calls and safe for concurrent use.
type Engine struct {
	generator *generation.Generator
	oracle    oracle.Oracle
	logger    logging.Logger
}

// New builds an Engine. A nil logger falls back to a no-op one.
func New(gen *generation.Generator, orc oracle.Oracle, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{generator: gen, oracle: orc, logger: logger.Named("engine")}
}

// ─────────────────────────────────────────────────────────────────────────────
// Execution
// ─────────────────────────────────────────────────────────────────────────────

// Execute runs the full loop for the given plan. Per-candidate evaluation
// problems are contained (the candidate is recorded and dropped); a systemic
// oracle error aborts the run. On abort nothing from the failing round is
// returned. progress may be nil.
func (e *Engine) Execute(ctx context.Context, runID common.ID, plan run.Plan, rec trace.Recorder, progress ProgressFunc) (*Outcome, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = trace.NopRecorder{}
	}
	if progress == nil {
		progress = func(int, string) {}
	}

	log := e.logger.With(logging.String("run_id", runID.String()))
	log.Info("run started",
		logging.Int("rounds", plan.Rounds),
		logging.Int("candidates_per_round", plan.CandidatesPerRound),
		logging.Int("top_k", plan.TopK))
	rec.Record("engine", "run started", nil, common.Metadata{
		"rounds":               plan.Rounds,
		"candidates_per_round": plan.CandidatesPerRound,
		"top_k":                plan.TopK,
		"max_violations":       plan.MaxViolations,
		"scoring_penalty":      plan.ScoringPenalty,
	})

	var (
		accumulated []candidate.Evaluated
		eliteSeed   []string
		invalid     int
	)

	for round := 1; round <= plan.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeRunAborted,
				fmt.Sprintf("run aborted before round %d", round))
		}

		roundResult, err := e.runRound(ctx, round, plan, eliteSeed, rec, progress)
		if err != nil {
			log.Error("round failed", logging.Int("round", round), logging.Err(err))
			return nil, err
		}

		accumulated = append(accumulated, roundResult.all...)
		eliteSeed = structuresOf(roundResult.elite)
		invalid += roundResult.invalid

		progress(round, fmt.Sprintf("round %d/%d finished", round, plan.Rounds))
		rec.Record("engine", fmt.Sprintf("round %d finished", round), &round, common.Metadata{
			"admitted": len(roundResult.all),
			"invalid":  roundResult.invalid,
			"rejected": roundResult.rejected,
			"elite":    len(roundResult.elite),
		})
	}

	final := ranking.AssignGlobalRanks(accumulated)
	rec.Record("engine", "run completed", nil, common.Metadata{
		"total_candidates": len(final),
		"total_invalid":    invalid,
	})
	log.Info("run completed",
		logging.Int("total_candidates", len(final)),
		logging.Int("total_invalid", invalid))

	return &Outcome{
		Candidates:   final,
		RoundsRun:    plan.Rounds,
		InvalidCount: invalid,
	}, nil
}

type roundOutcome struct {
	all      []candidate.Evaluated
	elite    []candidate.Evaluated
	invalid  int
	rejected int
}

func (e *Engine) runRound(ctx context.Context, round int, plan run.Plan, eliteSeed []string, rec trace.Recorder, progress ProgressFunc) (*roundOutcome, error) {
	progress(round, fmt.Sprintf("round %d: generating candidates", round))
	structures := e.generator.Generate(round, eliteSeed, plan.CandidatesPerRound)
	rec.Record("generator", fmt.Sprintf("generated %d candidates", len(structures)), &round,
		common.Metadata{"seeded": len(eliteSeed) > 0})

	progress(round, fmt.Sprintf("round %d: evaluating candidates", round))
	admitted, invalid, rejected, err := e.evaluate(ctx, round, plan, structures)
	if err != nil {
		return nil, err
	}
	rec.Record("oracle", fmt.Sprintf("evaluated %d candidates", len(structures)), &round,
		common.Metadata{"admitted": len(admitted), "invalid": invalid, "rejected": rejected})

	progress(round, fmt.Sprintf("round %d: ranking", round))
	ranked := ranking.Rank(admitted, plan.TopK)
	rec.Record("ranker", fmt.Sprintf("ranked %d admitted candidates", len(ranked.All)), &round, nil)

	return &roundOutcome{
		all:      ranked.All,
		elite:    ranked.Elite,
		invalid:  invalid,
		rejected: rejected,
	}, nil
}

// evaluate calls the oracle, screens and scores every structure. Invalid
// structures are counted and dropped; admission failures are scored for the
// audit counters but excluded from the returned slice. A non-nil oracle
// error is systemic and aborts the round.
func (e *Engine) evaluate(ctx context.Context, round int, plan run.Plan, structures []string) (admitted []candidate.Evaluated, invalid, rejected int, err error) {
	for _, structure := range structures {
		res, oerr := e.oracle.ProcessCandidate(ctx, structure)
		if oerr != nil {
			return nil, 0, 0, errors.Wrap(oerr, errors.ErrCodeOracleUnavailable,
				fmt.Sprintf("oracle failed in round %d", round))
		}
		if !res.Valid {
			invalid++
			continue
		}

		verdict := screening.Evaluate(res.Descriptors, plan.MaxViolations)
		ev := candidate.Evaluated{
			Candidate:      candidate.Candidate{Structure: structure, Round: round},
			Valid:          true,
			Descriptors:    res.Descriptors,
			ViolationCount: verdict.ViolationCount,
			ViolatedRules:  verdict.ViolatedRules,
			Passed:         verdict.Passed,
			Score:          ranking.Score(res.Descriptors, verdict.ViolationCount, plan.ScoringPenalty),
		}

		if !ev.Passed {
			rejected++
			continue
		}
		admitted = append(admitted, ev)
	}
	return admitted, invalid, rejected, nil
}

func structuresOf(cands []candidate.Evaluated) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Structure
	}
	return out
}

//Personal.AI order the ending
