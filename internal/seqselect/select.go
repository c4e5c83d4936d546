// Package seqselect partitions a protein database by organism and
// annotation keyword, matched case-insensitively against FASTA
// description lines.
package seqselect

import (
	"context"
	"fmt"
	"strings"

	"kunitzscan/internal/fasta"
)

// Filter names the target family. Keyword selects family members;
// Organism splits them into training (match) and held-out (no match).
type Filter struct {
	Organism string
	Keyword  string
}

func (f Filter) matchKeyword(desc string) bool {
	return strings.Contains(strings.ToLower(desc), strings.ToLower(f.Keyword))
}

func (f Filter) matchOrganism(desc string) bool {
	return strings.Contains(strings.ToLower(desc), strings.ToLower(f.Organism))
}

// Partition is the three-way split of a database under a Filter.
type Partition struct {
	Training []fasta.Record // keyword AND organism
	HeldOut  []fasta.Record // keyword AND NOT organism
	Others   []fasta.Record // NOT keyword; negative sampling pool
}

// Split streams the database at path and partitions every record.
// Records matching the keyword but not the organism become held-out
// positives; non-keyword records form the negative pool.
func Split(ctx context.Context, path string, f Filter) (Partition, error) {
	var p Partition
	err := fasta.EachRecordPath(ctx, path, func(r fasta.Record) error {
		switch {
		case f.matchKeyword(r.Desc) && f.matchOrganism(r.Desc):
			p.Training = append(p.Training, r)
		case f.matchKeyword(r.Desc):
			p.HeldOut = append(p.HeldOut, r)
		default:
			p.Others = append(p.Others, r)
		}
		return nil
	})
	if err != nil {
		return Partition{}, fmt.Errorf("select: %w", err)
	}
	if len(p.Training) == 0 {
		return Partition{}, fmt.Errorf("select: no %q sequences for organism %q in %s",
			f.Keyword, f.Organism, path)
	}
	return p, nil
}
