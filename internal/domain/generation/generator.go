// Package generation produces candidate structures for each optimization
// round. Round one draws from a fixed corpus of drug-like seed structures;
// later rounds mutate the prior round's elite set with a small table of
// bounded rewrite rules.
package generation

import (
	"math/rand"
	"strings"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Seed corpus and rewrite rules
// ─────────────────────────────────────────────────────────────────────────────

// baseCorpus holds well-known drug-like SMILES used to bootstrap round one
// and to pad any shortfall in later rounds.
var baseCorpus = []string{
	"CC(C)Cc1ccc(cc1)C(C)C(O)=O",    // ibuprofen
	"CC(=O)Oc1ccccc1C(O)=O",         // aspirin
	"CN1C=NC2=C1C(=O)N(C(=O)N2C)C",  // caffeine
	"c1ccc(cc1)C(=O)O",              // benzoic acid
	"c1ccccc1",                      // benzene
	"CC(C)NCC(COc1ccccc1)O",         // propranolol-like
	"Cc1ccc(cc1)S(=O)(=O)N",         // sulfonamide-like
	"CCN(CC)CCNC(=O)c1cc(ccc1OC)N",  // procainamide-like
}

// rewrite is a single pattern-to-replacement rule applied to the first
// occurrence of the pattern. A pattern absent from the source leaves it
// unchanged; no-op mutations are accepted output.
type rewrite struct {
	Pattern     string
	Replacement string
}

var rewrites = []rewrite{
	{"C", "CC"},                     // add methyl
	{"c1ccccc1", "c1cc(C)ccc1"},     // methylate benzene ring
	{"C(=O)O", "C(=O)OC"},           // methylate carboxylic acid
	{"N", "NC"},                     // methylate nitrogen
	{"c1ccccc1", "c1ccc(O)cc1"},     // hydroxylate benzene ring
}

// BaseCorpus returns a copy of the seed corpus.
func BaseCorpus() []string {
	out := make([]string, len(baseCorpus))
	copy(out, baseCorpus)
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Generator
// ─────────────────────────────────────────────────────────────────────────────

// Generator produces exactly n candidate structures per call. It is safe for
// concurrent use; the random source is guarded by a mutex.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator builds a Generator over the given random source. A nil source
// falls back to a time-seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Generator{rng: rng}
}

// Generate returns exactly n candidate structures for the given round.
// Round one, or any round with an empty elite seed, draws from the base
// corpus; later rounds keep the seed verbatim and fill the remainder with
// mutated seeds. Duplicates are allowed and n is always honored.
func (g *Generator) Generate(round int, eliteSeed []string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if round <= 1 || len(eliteSeed) == 0 {
		return g.fromBase(n)
	}
	return g.fromSeeds(eliteSeed, n)
}

// fromBase assembles candidates from the base corpus, interleaving mutated
// variants, for up to 5n attempts before padding with repeats.
func (g *Generator) fromBase(n int) []string {
	candidates := make([]string, 0, n)
	maxAttempts := n * 5

	for attempts := 0; len(candidates) < n && attempts < maxAttempts; attempts++ {
		base := baseCorpus[g.rng.Intn(len(baseCorpus))]
		if !contains(candidates, base) {
			candidates = append(candidates, base)
		}
		if len(candidates) < n {
			variant := g.mutate(base)
			if variant != "" && !contains(candidates, variant) {
				candidates = append(candidates, variant)
			}
		}
	}

	for len(candidates) < n {
		candidates = append(candidates, baseCorpus[g.rng.Intn(len(baseCorpus))])
	}
	return candidates[:n]
}

// fromSeeds keeps the seed set verbatim, then mutates random seeds for up to
// 3n attempts. Past 2n attempts duplicates are accepted so the output still
// reaches n; any remaining shortfall is padded from the base corpus in order.
func (g *Generator) fromSeeds(seeds []string, n int) []string {
	candidates := make([]string, 0, n)

	keep := len(seeds)
	if keep > n {
		keep = n
	}
	candidates = append(candidates, seeds[:keep]...)

	maxAttempts := n * 3
	for attempts := 1; len(candidates) < n && attempts <= maxAttempts; attempts++ {
		seed := seeds[g.rng.Intn(len(seeds))]
		mutated := g.mutate(seed)
		if mutated == "" {
			continue
		}
		if !contains(candidates, mutated) || attempts > n*2 {
			candidates = append(candidates, mutated)
		}
	}

	for i := 0; len(candidates) < n; i++ {
		candidates = append(candidates, baseCorpus[i%len(baseCorpus)])
	}
	return candidates[:n]
}

// mutate applies one randomly chosen rewrite rule to the first occurrence of
// its pattern. Sources without the pattern are returned unchanged.
func (g *Generator) mutate(structure string) string {
	rw := rewrites[g.rng.Intn(len(rewrites))]
	if strings.Contains(structure, rw.Pattern) {
		return strings.Replace(structure, rw.Pattern, rw.Replacement, 1)
	}
	return structure
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
