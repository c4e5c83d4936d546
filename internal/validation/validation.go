// Package validation assembles the labeled corpus used to score the
// model: held-out family members as positives plus a seeded random
// sample of non-family sequences as negatives.
package validation

import (
	"math/rand"

	"kunitzscan/internal/fasta"
)

// Sets is the labeled validation corpus. Labels are fixed by
// construction: every record in Positives is ground-truth positive,
// every record in Negatives ground-truth negative. Corpus is the
// concatenation handed to the search tool.
type Sets struct {
	Positives []fasta.Record
	Negatives []fasta.Record
}

// Corpus returns positives followed by negatives.
func (s Sets) Corpus() []fasta.Record {
	out := make([]fasta.Record, 0, len(s.Positives)+len(s.Negatives))
	out = append(out, s.Positives...)
	out = append(out, s.Negatives...)
	return out
}

// Assemble draws n negatives from pool without replacement using the
// given seed and combines them with the held-out positives. For a fixed
// seed and pool order the sample is identical across runs. When n
// exceeds the pool, the whole pool is taken.
func Assemble(positives, pool []fasta.Record, n int, seed int64) Sets {
	if n > len(pool) {
		n = len(pool)
	}
	if n < 0 {
		n = 0
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(pool))
	negs := make([]fasta.Record, 0, n)
	for _, idx := range perm[:n] {
		negs = append(negs, pool[idx])
	}
	return Sets{Positives: positives, Negatives: negs}
}

// IDs returns the record identifiers of rs in order.
func IDs(rs []fasta.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
