package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/LeadScout/internal/config"
	"github.com/turtacn/LeadScout/internal/domain/generation"
	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/engine"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LeadScout/internal/oracle"
	"github.com/turtacn/LeadScout/internal/trace"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

type runOptions struct {
	rounds        int
	candidates    int
	topK          int
	maxViolations int
	penalty       float64
	seed          int64
	output        string
	showTrace     bool
}

func newRunCmd(root *RootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute an optimization run locally and print the results",
		Long:  "Runs the full generate-evaluate-rank loop in-process with the built-in\nheuristic oracle. No database or server is required.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocal(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.rounds, "rounds", config.DefaultRounds, "number of optimization rounds (1-10)")
	f.IntVar(&opts.candidates, "candidates", config.DefaultCandidatesPerRound, "candidates generated per round (10-200)")
	f.IntVar(&opts.topK, "top-k", config.DefaultTopK, "elites reseeding the next round (1-20)")
	f.IntVar(&opts.maxViolations, "max-violations", config.DefaultMaxViolations, "admission rule violations tolerated (0-5)")
	f.Float64Var(&opts.penalty, "penalty", config.DefaultScoringPenalty, "score penalty per violation (0.0-1.0)")
	f.Int64Var(&opts.seed, "seed", 0, "random seed (0 uses a time-based seed)")
	f.StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")
	f.BoolVar(&opts.showTrace, "trace", false, "print the audit trail after the results")

	return cmd
}

func runLocal(cmd *cobra.Command, root *RootOptions, opts *runOptions) error {
	plan := runDomain.Plan{
		Rounds:             opts.rounds,
		CandidatesPerRound: opts.candidates,
		TopK:               opts.topK,
		MaxViolations:      opts.maxViolations,
		ScoringPenalty:     opts.penalty,
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	logger := logging.NewNopLogger()
	if root.Verbose {
		var err error
		logger, err = logging.NewLogger(logging.LogConfig{
			Level:            "debug",
			Format:           "console",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		})
		if err != nil {
			return err
		}
	}

	var rng *rand.Rand
	if opts.seed != 0 {
		rng = rand.New(rand.NewSource(opts.seed))
	}

	runID := common.NewID()
	recorder := trace.NewMemoryRecorder(runID)
	eng := engine.New(generation.NewGenerator(rng), oracle.NewHeuristicOracle(), logger)

	out := cmd.OutOrStdout()
	progress := func(round int, message string) {
		if root.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "[round %d] %s\n", round, message)
		}
	}

	outcome, err := eng.Execute(cmd.Context(), runID, plan, recorder, progress)
	if err != nil {
		return err
	}

	top := outcome.Candidates
	if len(top) > plan.TopK {
		top = top[:plan.TopK]
	}

	if opts.output == "json" {
		doc := map[string]interface{}{
			"run_id":           runID,
			"rounds_run":       outcome.RoundsRun,
			"total_candidates": len(outcome.Candidates),
			"invalid_count":    outcome.InvalidCount,
			"top_candidates":   top,
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	}

	fmt.Fprintf(out, "run %s: %d rounds, %d candidates admitted, %d invalid\n\n",
		runID, outcome.RoundsRun, len(outcome.Candidates), outcome.InvalidCount)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSTRUCTURE\tROUND\tSCORE\tQED\tVIOLATIONS")
	for _, ec := range top {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%.4f\t%d\n",
			ec.Rank, ec.Structure, ec.Round, ec.Score, ec.Descriptors.QED(), ec.ViolationCount)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if opts.showTrace {
		fmt.Fprintln(out)
		printTrace(out, recorder.Events())
	}
	return nil
}

func printTrace(out io.Writer, events []trace.Event) {
	for _, ev := range events {
		if ev.Round != nil {
			fmt.Fprintf(out, "%s  [%s] round %d: %s\n",
				ev.Timestamp.Format("15:04:05.000"), ev.Actor, *ev.Round, ev.Action)
			continue
		}
		fmt.Fprintf(out, "%s  [%s] %s\n", ev.Timestamp.Format("15:04:05.000"), ev.Actor, ev.Action)
	}
}

//Personal.AI order the ending
