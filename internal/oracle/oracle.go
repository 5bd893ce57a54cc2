// Package oracle defines the descriptor oracle consumed by the optimization
// engine, plus a local heuristic implementation. The oracle answers one
// question per candidate: is the structure well formed, and if so what are
// its physicochemical descriptors.
//
// Invalidity is data, not an error: a malformed structure yields a Result
// with Valid=false. Error returns are reserved for systemic faults such as a
// remote descriptor service being unreachable.
package oracle

import (
	"context"
	stderrors "errors"
	"math"
	"regexp"
	"strings"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
)

// ErrUnavailable marks a systemic oracle fault. The engine treats it as
// fatal for the whole run.
var ErrUnavailable = stderrors.New("oracle unavailable")

// Result is the oracle's verdict for one candidate structure.
type Result struct {
	Structure   string                `json:"structure"`
	Valid       bool                  `json:"valid"`
	Descriptors candidate.Descriptors `json:"descriptors,omitempty"`
	Reason      string                `json:"reason,omitempty"`
}

// Oracle evaluates candidate structures.
type Oracle interface {
	ProcessCandidate(ctx context.Context, structure string) (*Result, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Heuristic oracle
// ─────────────────────────────────────────────────────────────────────────────

// validSMILESChars defines the allowed character set for SMILES notation.
// Wildcards and isotope markers are accepted; whitespace is not.
var validSMILESChars = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#/\\%.*]+$`)

// HeuristicOracle estimates descriptors from the SMILES text itself, without
// a cheminformatics toolkit. The estimates are crude but deterministic,
// which is what the engine needs: identical input always yields identical
// descriptors and therefore identical scores.
type HeuristicOracle struct{}

// NewHeuristicOracle returns the local descriptor oracle.
func NewHeuristicOracle() *HeuristicOracle {
	return &HeuristicOracle{}
}

// ProcessCandidate implements Oracle. It never returns an error; every
// malformed input maps to an invalid Result.
func (o *HeuristicOracle) ProcessCandidate(_ context.Context, structure string) (*Result, error) {
	if structure == "" {
		return &Result{Structure: structure, Reason: "empty structure"}, nil
	}
	if !validSMILESChars.MatchString(structure) {
		return &Result{Structure: structure, Reason: "invalid characters in SMILES"}, nil
	}
	if !bracketsBalanced(structure) {
		return &Result{Structure: structure, Reason: "unbalanced brackets in SMILES"}, nil
	}

	return &Result{
		Structure:   structure,
		Valid:       true,
		Descriptors: estimateDescriptors(structure),
	}, nil
}

// bracketsBalanced checks that every ( and [ has a matching closer in the
// right nesting order.
func bracketsBalanced(smiles string) bool {
	var stack []rune
	closers := map[rune]rune{')': '(', ']': '['}

	for _, ch := range smiles {
		switch ch {
		case '(', '[':
			stack = append(stack, ch)
		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != closers[ch] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// ─────────────────────────────────────────────────────────────────────────────
// Descriptor estimation
// ─────────────────────────────────────────────────────────────────────────────

// estimateDescriptors derives the canonical descriptor set from atom counts
// in the SMILES text. Aromatic atoms are lowercase, aliphatic uppercase.
func estimateDescriptors(smiles string) candidate.Descriptors {
	cCount := strings.Count(smiles, "C") + strings.Count(smiles, "c")
	nCount := strings.Count(smiles, "N") + strings.Count(smiles, "n")
	oCount := strings.Count(smiles, "O") + strings.Count(smiles, "o")
	sCount := strings.Count(smiles, "S") + strings.Count(smiles, "s")

	// Atomic masses only; implicit hydrogens folded into a per-heavy-atom
	// correction.
	heavyAtoms := cCount + nCount + oCount + sCount
	mw := float64(cCount)*12.011 + float64(nCount)*14.007 +
		float64(oCount)*15.999 + float64(sCount)*32.06 +
		float64(heavyAtoms)*1.2

	aromaticRings := strings.Count(smiles, "c") / 6

	// Heteroatoms donate and accept hydrogen bonds in this simplified model.
	hbd := nCount + oCount
	hba := nCount + oCount

	tpsa := float64(nCount+oCount) * 20.0

	rotatable := strings.Count(smiles, "C(") + strings.Count(smiles, "N(") +
		strings.Count(smiles, "CC") + strings.Count(smiles, "CN")

	logp := float64(aromaticRings)*0.5 + float64(cCount)*0.2 -
		float64(nCount+oCount)*0.3

	return candidate.Descriptors{
		candidate.DescMolecularWeight: round2(mw),
		candidate.DescLogP:            round2(logp),
		candidate.DescHBondDonors:     float64(hbd),
		candidate.DescHBondAcceptors:  float64(hba),
		candidate.DescTPSA:            round2(tpsa),
		candidate.DescRotatableBonds:  float64(rotatable),
		candidate.DescQED:             round4(estimateQED(mw, logp, hbd, hba, tpsa)),
	}
}

// estimateQED composes a bounded drug-likeness score from how far each
// descriptor sits inside its drug-like range. The result is clamped to
// [0, 1].
func estimateQED(mw, logp float64, hbd, hba int, tpsa float64) float64 {
	score := 1.0
	score -= rangePenalty(mw, 150, 500, 0.002)
	score -= rangePenalty(logp, -0.4, 5.0, 0.08)
	score -= rangePenalty(float64(hbd), 0, 5, 0.05)
	score -= rangePenalty(float64(hba), 0, 10, 0.04)
	score -= rangePenalty(tpsa, 20, 140, 0.003)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// rangePenalty returns weight times the distance by which v falls outside
// [lo, hi], zero when inside.
func rangePenalty(v, lo, hi, weight float64) float64 {
	switch {
	case v < lo:
		return (lo - v) * weight
	case v > hi:
		return (v - hi) * weight
	}
	return 0
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

//Personal.AI order the ending
