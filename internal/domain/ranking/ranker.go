// Package ranking implements candidate scoring and top-K selection.
//
// The score formula is:
//
//	score = qed − penalty × violationCount
//
// rounded to 4 decimal places.  The rounding is authoritative: downstream
// cross-round re-ranking sorts on the already-rounded value, and tests compare
// scores exactly.
package ranking

import (
	"math"
	"sort"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
)

// round4 rounds half away from zero to 4 decimal places.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// Score computes the admission-penalised drug-likeness score for a candidate
// from its descriptors and violation count.  A missing qed descriptor scores
// as 0 before the penalty is applied.
func Score(descriptors candidate.Descriptors, violationCount int, penalty float64) float64 {
	return round4(descriptors.QED() - penalty*float64(violationCount))
}

// Result carries the full sorted list and its elite prefix.
type Result struct {
	// All is every input candidate sorted by score descending.  Candidates
	// with equal scores retain their relative input order.
	All []candidate.Evaluated

	// Elite is the first min(topK, len(All)) entries of All, used to seed the
	// next round's generation.
	Elite []candidate.Evaluated
}

// Rank sorts the evaluated candidates by score descending (stable, so ties
// keep encounter order) and selects the elite prefix.  The input slice is not
// modified.
func Rank(cands []candidate.Evaluated, topK int) Result {
	all := make([]candidate.Evaluated, len(cands))
	copy(all, cands)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	k := topK
	if k > len(all) {
		k = len(all)
	}
	if k < 0 {
		k = 0
	}

	return Result{All: all, Elite: all[:k]}
}

// AssignGlobalRanks merges per-round results, sorts them descending by their
// already-rounded scores (stable, so cross-round ties keep accumulation
// order), and assigns 1-based ranks.  A lower-round candidate can outrank a
// later-round one.  Returns a new slice; the input is not modified.
func AssignGlobalRanks(accumulated []candidate.Evaluated) []candidate.Evaluated {
	ranked := make([]candidate.Evaluated, len(accumulated))
	copy(ranked, accumulated)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

//Personal.AI order the ending
