// Package hmmer parses the hmmsearch --tblout per-target table.
package hmmer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Hit is one per-target line: the target sequence, the query model, and
// the full-sequence E-value and bit score.
type Hit struct {
	Target string
	Query  string
	EValue float64
	Score  float64
}

// tblout full-sequence columns: target(0) accession(1) query(2)
// accession(3) evalue(4) score(5) bias(6) ...
const (
	colTarget = 0
	colQuery  = 2
	colEValue = 4
	colScore  = 5
)

// ParseTable reads a --tblout table. Comment lines are skipped; data
// lines with an unparsable E-value are skipped rather than failing the
// run, since hmmsearch wraps long descriptions unpredictably.
func ParseTable(r io.Reader) ([]Hit, error) {
	var hits []Hit
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) <= colScore {
			continue
		}
		ev, err := strconv.ParseFloat(fields[colEValue], 64)
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(fields[colScore], 64)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{
			Target: fields[colTarget],
			Query:  fields[colQuery],
			EValue: ev,
			Score:  score,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tblout scan: %w", err)
	}
	return hits, nil
}

// ParseTableFile parses the table at path.
func ParseTableFile(path string) ([]Hit, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ParseTable(fh)
}

// HitSet returns the target IDs with E-value at or below cutoff.
func HitSet(hits []Hit, cutoff float64) map[string]bool {
	set := make(map[string]bool, len(hits))
	for _, h := range hits {
		if h.EValue <= cutoff {
			set[h.Target] = true
		}
	}
	return set
}
