// Package align holds gapped multiple sequence alignments and their
// aligned-FASTA, Clustal, and Stockholm encodings.
package align

import (
	"context"
	"fmt"
	"io"

	"kunitzscan/internal/fasta"
)

// Alignment is an ordered set of equal-length gapped rows sharing a
// column index.
type Alignment struct {
	Rows []fasta.Record
}

// NCols returns the shared row length, 0 for an empty alignment.
func (a Alignment) NCols() int {
	if len(a.Rows) == 0 {
		return 0
	}
	return len(a.Rows[0].Seq)
}

// Column returns the residues of column i, one byte per row.
func (a Alignment) Column(i int) []byte {
	col := make([]byte, len(a.Rows))
	for r, row := range a.Rows {
		col[r] = row.Seq[i]
	}
	return col
}

func (a Alignment) validate() error {
	if len(a.Rows) == 0 {
		return fmt.Errorf("alignment has no rows")
	}
	want := len(a.Rows[0].Seq)
	for _, row := range a.Rows[1:] {
		if len(row.Seq) != want {
			return fmt.Errorf("row %s has length %d, others have %d",
				row.ID, len(row.Seq), want)
		}
	}
	return nil
}

// ReadFasta reads an aligned-FASTA alignment and checks that all rows
// share one length.
func ReadFasta(r io.Reader) (Alignment, error) {
	var a Alignment
	err := fasta.EachRecord(context.Background(), r, func(rec fasta.Record) error {
		a.Rows = append(a.Rows, rec)
		return nil
	})
	if err != nil {
		return Alignment{}, err
	}
	if err := a.validate(); err != nil {
		return Alignment{}, err
	}
	return a, nil
}

// WriteFasta writes the alignment in aligned-FASTA format.
func WriteFasta(w io.Writer, a Alignment) error {
	return fasta.WriteAll(w, a.Rows)
}
