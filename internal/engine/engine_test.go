package engine

import (
	"context"
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/LeadScout/internal/domain/candidate"
	"github.com/turtacn/LeadScout/internal/domain/generation"
	"github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/oracle"
	"github.com/turtacn/LeadScout/internal/trace"
	"github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// failingOracle simulates a total descriptor-service outage.
type failingOracle struct{}

func (failingOracle) ProcessCandidate(context.Context, string) (*oracle.Result, error) {
	return nil, oracle.ErrUnavailable
}

// flakyOracle rejects every structure containing the marker as invalid but
// never errors.
type flakyOracle struct {
	inner  oracle.Oracle
	marker string
}

func (f flakyOracle) ProcessCandidate(ctx context.Context, structure string) (*oracle.Result, error) {
	res, err := f.inner.ProcessCandidate(ctx, structure)
	if err != nil {
		return nil, err
	}
	if f.marker != "" && containsStr(structure, f.marker) {
		return &oracle.Result{Structure: structure, Reason: "marked invalid"}, nil
	}
	return res, nil
}

func containsStr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func testEngine(seed int64, orc oracle.Oracle) *Engine {
	gen := generation.NewGenerator(rand.New(rand.NewSource(seed)))
	return New(gen, orc, nil)
}

func testPlan() run.Plan {
	return run.Plan{
		Rounds:             2,
		CandidatesPerRound: 20,
		TopK:               3,
		MaxViolations:      1,
		ScoringPenalty:     0.1,
	}
}

func TestExecute_EndToEnd(t *testing.T) {
	t.Parallel()

	e := testEngine(42, oracle.NewHeuristicOracle())
	rec := trace.NewMemoryRecorder(common.NewID())

	var progress []string
	out, err := e.Execute(context.Background(), common.NewID(), testPlan(), rec,
		func(round int, msg string) { progress = append(progress, msg) })

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.RoundsRun)
	require.NotEmpty(t, out.Candidates)

	// Global ranking: 1-based, descending by score, rank 1 is the maximum.
	best := out.Candidates[0]
	assert.Equal(t, 1, best.Rank)
	for i, c := range out.Candidates {
		assert.Equal(t, i+1, c.Rank)
		assert.True(t, c.Passed)
		assert.True(t, c.Valid)
		if i > 0 {
			assert.LessOrEqual(t, c.Score, out.Candidates[i-1].Score)
		}
	}

	// Only rounds 1 and 2 appear.
	for _, c := range out.Candidates {
		assert.Contains(t, []int{1, 2}, c.Round)
	}

	// Progress advanced through both rounds.
	assert.NotEmpty(t, progress)
	assert.Contains(t, progress, "round 1: generating candidates")
	assert.Contains(t, progress, "round 2/2 finished")

	// Trace bookends present.
	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "run started", events[0].Action)
	assert.Equal(t, "run completed", events[len(events)-1].Action)
}

func TestExecute_EliteSeedsNextRoundVerbatim(t *testing.T) {
	t.Parallel()

	plan := testPlan()
	e := testEngine(7, oracle.NewHeuristicOracle())

	out, err := e.Execute(context.Background(), common.NewID(), plan, nil, nil)
	require.NoError(t, err)

	// Accumulated results keep per-round sorted order, so round 1's elite is
	// the prefix of its slice of the output.
	var roundOne []candidate.Evaluated
	roundTwo := map[string]bool{}
	for _, c := range out.Candidates {
		switch c.Round {
		case 1:
			roundOne = append(roundOne, c)
		case 2:
			roundTwo[c.Structure] = true
		}
	}
	require.NotEmpty(t, roundOne, "round 1 must admit at least one candidate")

	// Sorting by global rank does not preserve the per-round prefix, so
	// recover it by score order within round 1.
	eliteN := plan.TopK
	if eliteN > len(roundOne) {
		eliteN = len(roundOne)
	}
	for _, elite := range roundOne[:eliteN] {
		assert.True(t, roundTwo[elite.Structure],
			"elite %q must be generated verbatim in round 2", elite.Structure)
	}
}

func TestExecute_TotalOracleOutageFailsRun(t *testing.T) {
	t.Parallel()

	e := testEngine(1, failingOracle{})
	rec := trace.NewMemoryRecorder(common.NewID())

	out, err := e.Execute(context.Background(), common.NewID(), testPlan(), rec, nil)

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsCode(err, errors.ErrCodeOracleUnavailable))
	assert.True(t, stderrors.Is(err, oracle.ErrUnavailable))
}

func TestExecute_InvalidCandidatesContained(t *testing.T) {
	t.Parallel()

	// Mark every sulfonamide-like structure invalid; the run must still
	// complete and count them.
	orc := flakyOracle{inner: oracle.NewHeuristicOracle(), marker: "S(=O)(=O)N"}
	e := testEngine(11, orc)

	out, err := e.Execute(context.Background(), common.NewID(), testPlan(), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, out)

	for _, c := range out.Candidates {
		assert.NotContains(t, c.Structure, "S(=O)(=O)N")
	}
}

func TestExecute_InvalidPlanRejected(t *testing.T) {
	t.Parallel()

	e := testEngine(1, oracle.NewHeuristicOracle())
	plan := testPlan()
	plan.Rounds = 0

	out, err := e.Execute(context.Background(), common.NewID(), plan, nil, nil)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsCode(err, errors.ErrCodePlanInvalid))
}

func TestExecute_ContextCancellationAborts(t *testing.T) {
	t.Parallel()

	e := testEngine(1, oracle.NewHeuristicOracle())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := e.Execute(ctx, common.NewID(), testPlan(), nil, nil)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRunAborted))
}

func TestExecute_SingleRound(t *testing.T) {
	t.Parallel()

	plan := testPlan()
	plan.Rounds = 1
	plan.CandidatesPerRound = 10

	e := testEngine(19, oracle.NewHeuristicOracle())
	out, err := e.Execute(context.Background(), common.NewID(), plan, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, out.RoundsRun)
	for _, c := range out.Candidates {
		assert.Equal(t, 1, c.Round)
	}
}

func TestExecute_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := testEngine(99, oracle.NewHeuristicOracle()).
		Execute(context.Background(), common.NewID(), testPlan(), nil, nil)
	require.NoError(t, err)
	b, err := testEngine(99, oracle.NewHeuristicOracle()).
		Execute(context.Background(), common.NewID(), testPlan(), nil, nil)
	require.NoError(t, err)

	require.Len(t, b.Candidates, len(a.Candidates))
	for i := range a.Candidates {
		assert.Equal(t, a.Candidates[i].Structure, b.Candidates[i].Structure)
		assert.InDelta(t, a.Candidates[i].Score, b.Candidates[i].Score, 1e-12)
	}
}

//Personal.AI order the ending
