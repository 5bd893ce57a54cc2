package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/LeadScout/internal/domain/candidate"
)

func withQED(qed float64) candidate.Descriptors {
	return candidate.Descriptors{candidate.DescQED: qed}
}

func evaluated(structure string, score float64) candidate.Evaluated {
	return candidate.Evaluated{
		Candidate: candidate.Candidate{Structure: structure, Round: 1},
		Valid:     true,
		Passed:    true,
		Score:     score,
	}
}

func TestScore_Formula(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		qed        float64
		violations int
		penalty    float64
		want       float64
	}{
		{"no violations", 0.72, 0, 0.1, 0.72},
		{"fixed point from rounding edge", 0.55, 1, 0.1, 0.45},
		{"two violations", 0.9, 2, 0.1, 0.7},
		{"zero penalty", 0.61, 5, 0.0, 0.61},
		{"negative result allowed", 0.2, 5, 0.1, -0.3},
		{"rounded to four places", 0.123456, 0, 0.1, 0.1235},
		{"penalty rounding", 0.5, 3, 0.0333, 0.4001},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Score(withQED(tc.qed), tc.violations, tc.penalty)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestScore_MissingQEDScoresFromZero(t *testing.T) {
	t.Parallel()

	got := Score(candidate.Descriptors{}, 2, 0.1)
	assert.InDelta(t, -0.2, got, 1e-12)
}

func TestRank_SortsDescending(t *testing.T) {
	t.Parallel()

	in := []candidate.Evaluated{
		evaluated("a", 0.3),
		evaluated("b", 0.9),
		evaluated("c", 0.6),
	}

	r := Rank(in, 2)

	require.Len(t, r.All, 3)
	assert.Equal(t, "b", r.All[0].Structure)
	assert.Equal(t, "c", r.All[1].Structure)
	assert.Equal(t, "a", r.All[2].Structure)

	// Input order untouched.
	assert.Equal(t, "a", in[0].Structure)
}

func TestRank_StableOnTies(t *testing.T) {
	t.Parallel()

	in := []candidate.Evaluated{
		evaluated("first", 0.5),
		evaluated("second", 0.5),
		evaluated("third", 0.5),
		evaluated("top", 0.8),
	}

	r := Rank(in, 10)

	assert.Equal(t, "top", r.All[0].Structure)
	assert.Equal(t, "first", r.All[1].Structure)
	assert.Equal(t, "second", r.All[2].Structure)
	assert.Equal(t, "third", r.All[3].Structure)
}

func TestRank_ElitePrefixProperty(t *testing.T) {
	t.Parallel()

	in := []candidate.Evaluated{
		evaluated("a", 0.1),
		evaluated("b", 0.7),
		evaluated("c", 0.4),
	}

	for _, topK := range []int{0, 1, 2, 3, 5, 20} {
		r := Rank(in, topK)
		want := topK
		if want > len(r.All) {
			want = len(r.All)
		}
		require.Len(t, r.Elite, want, "topK=%d", topK)
		for i := range r.Elite {
			assert.Equal(t, r.All[i], r.Elite[i], "topK=%d i=%d", topK, i)
		}
	}
}

func TestRank_EmptyInput(t *testing.T) {
	t.Parallel()

	r := Rank(nil, 3)
	assert.Empty(t, r.All)
	assert.Empty(t, r.Elite)
}

func TestAssignGlobalRanks_CrossRoundStable(t *testing.T) {
	t.Parallel()

	// Accumulation order: round 1 results then round 2 results.
	acc := []candidate.Evaluated{
		evaluated("r1-best", 0.8),
		evaluated("r1-mid", 0.5),
		evaluated("r2-best", 0.9),
		evaluated("r2-tied", 0.5),
	}

	ranked := AssignGlobalRanks(acc)

	require.Len(t, ranked, 4)
	assert.Equal(t, "r2-best", ranked[0].Structure)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "r1-best", ranked[1].Structure)
	assert.Equal(t, 2, ranked[1].Rank)
	// Tie at 0.5: the earlier-accumulated round 1 entry comes first.
	assert.Equal(t, "r1-mid", ranked[2].Structure)
	assert.Equal(t, "r2-tied", ranked[3].Structure)
	assert.Equal(t, 4, ranked[3].Rank)

	// Input slice untouched.
	assert.Zero(t, acc[0].Rank)
}

//Personal.AI order the ending
