// Package entropy computes per-column Shannon entropy of an alignment.
//
// Gap characters are part of the symbol alphabet: '-' and '.' are
// normalized to a single gap symbol and counted like any residue, so a
// gap-dominated column reads as low-entropy rather than vanishing from
// the profile. Entropy is in bits (log base 2): a fully conserved
// column scores 0 and k uniformly distributed symbols score log2(k).
package entropy

import (
	"math"

	"kunitzscan/internal/align"
)

const gap = '-'

func normalize(b byte) byte {
	switch b {
	case '-', '.':
		return gap
	}
	// Case carries no information in an alignment column.
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// Column returns the Shannon entropy of one column's symbols.
func Column(col []byte) float64 {
	if len(col) == 0 {
		return 0
	}
	counts := make(map[byte]int, 8)
	for _, b := range col {
		counts[normalize(b)]++
	}
	total := float64(len(col))
	h := 0.0
	for _, n := range counts {
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	// -0 from a single-symbol column.
	if h == 0 {
		return 0
	}
	return h
}

// Profile returns the entropy of every column in order.
func Profile(a align.Alignment) []float64 {
	out := make([]float64, a.NCols())
	for i := range out {
		out[i] = Column(a.Column(i))
	}
	return out
}
