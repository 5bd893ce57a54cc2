// Package screening implements the admission filter: a fixed, ordered table
// of upper-bound rules evaluated against a candidate's oracle descriptors.
// The rule set is Lipinski's Rule of Five plus a TPSA constraint.
package screening

import (
	"github.com/turtacn/LeadScout/internal/domain/candidate"
)

// Rule is a single upper-bound threshold on a named descriptor.
type Rule struct {
	// Descriptor is the canonical descriptor key the rule reads.
	Descriptor string

	// Max is the inclusive upper bound; values strictly above it violate
	// the rule.
	Max float64

	// Name is the human-readable rule label recorded in violation lists
	// and trace events.
	Name string
}

// rules is the fixed admission rule table.  Slice order is the evaluation
// order, so ViolatedRules is reproducible for identical input.
var rules = []Rule{
	{Descriptor: candidate.DescMolecularWeight, Max: 500, Name: "Molecular Weight <= 500"},
	{Descriptor: candidate.DescLogP, Max: 5, Name: "LogP <= 5"},
	{Descriptor: candidate.DescHBondDonors, Max: 5, Name: "H-Bond Donors <= 5"},
	{Descriptor: candidate.DescHBondAcceptors, Max: 10, Name: "H-Bond Acceptors <= 10"},
	{Descriptor: candidate.DescTPSA, Max: 140, Name: "TPSA <= 140"},
}

// Rules returns a copy of the admission rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Verdict is the outcome of evaluating one candidate's descriptors against
// the rule table.
type Verdict struct {
	Passed         bool     `json:"passed"`
	ViolationCount int      `json:"violation_count"`
	ViolatedRules  []string `json:"violated_rules"`
}

// Evaluate applies the fixed rule table to the given descriptors.  A
// descriptor missing from the input is skipped; absence is not failure.
// Passed is true iff the violation count does not exceed maxViolations.
func Evaluate(descriptors candidate.Descriptors, maxViolations int) Verdict {
	var violated []string
	for _, rule := range rules {
		value, ok := descriptors.Get(rule.Descriptor)
		if !ok {
			continue
		}
		if value > rule.Max {
			violated = append(violated, rule.Name)
		}
	}

	return Verdict{
		Passed:         len(violated) <= maxViolations,
		ViolationCount: len(violated),
		ViolatedRules:  violated,
	}
}

//Personal.AI order the ending
