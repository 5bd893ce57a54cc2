// Package candidate defines the core value objects of the optimization loop:
// the raw candidate structure proposed each round and its evaluated form
// carrying oracle descriptors, the admission verdict, and the score.
package candidate

// Canonical descriptor keys produced by the property oracle.  The admission
// rule table and the scorer reference descriptors exclusively through these
// keys so that a missing descriptor is observable (map lookup miss) rather
// than a zero value.
const (
	DescMolecularWeight = "mw"
	DescLogP            = "logp"
	DescHBondDonors     = "hbd"
	DescHBondAcceptors  = "hba"
	DescTPSA            = "tpsa"
	DescRotatableBonds  = "rotatable_bonds"
	DescQED             = "qed"
)

// Descriptors is the named numeric property mapping computed by the oracle
// for a valid structure.
type Descriptors map[string]float64

// Get returns the named descriptor and whether it is present.
func (d Descriptors) Get(name string) (float64, bool) {
	v, ok := d[name]
	return v, ok
}

// QED returns the drug-likeness descriptor, or 0 when absent.
func (d Descriptors) QED() float64 {
	return d[DescQED]
}

// Clone returns a deep copy so evaluated candidates stay immutable even when
// the oracle reuses buffers.
func (d Descriptors) Clone() Descriptors {
	if d == nil {
		return nil
	}
	out := make(Descriptors, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Candidate is a symbolic structure proposed for evaluation in a given round.
// It has no identity beyond its structure string within a round; duplicates
// are permitted and meaningful, since the same structure may legitimately
// recur across rounds.
type Candidate struct {
	Structure string `json:"structure"`
	Round     int    `json:"round"`
}

// Evaluated is a Candidate augmented with the oracle result, the admission
// verdict, and the score.  Instances are created fresh each round and never
// mutated after scoring; Rank is assigned once during final global ranking.
type Evaluated struct {
	Candidate

	Valid          bool        `json:"valid"`
	Descriptors    Descriptors `json:"descriptors,omitempty"`
	ViolationCount int         `json:"violation_count"`
	ViolatedRules  []string    `json:"violated_rules,omitempty"`
	Passed         bool        `json:"passed"`
	Score          float64     `json:"score"`
	Rank           int         `json:"rank,omitempty"`
}

//Personal.AI order the ending
