package align

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"kunitzscan/internal/fasta"
)

func rowRecord(name string, seq []byte) fasta.Record {
	return fasta.Record{ID: name, Desc: name, Seq: seq}
}

// WriteStockholm writes a minimal valid Stockholm file: the version
// header, one "name residues" line per row, and the terminator. No
// feature annotations are emitted; hmmbuild needs none.
func WriteStockholm(w io.Writer, a Alignment) error {
	var err error
	pf := func(format string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, v...)
	}
	pf("# STOCKHOLM 1.0\n\n")
	for _, row := range a.Rows {
		pf("%s %s\n", stockholmName(row.ID), row.Seq)
	}
	pf("//\n")
	return err
}

// Stockholm names must not contain whitespace.
func stockholmName(id string) string {
	return strings.Join(strings.Fields(id), "_")
}

// ReadStockholm reads the sequence rows of a Stockholm file, ignoring
// all "#=" feature annotations.
func ReadStockholm(r io.Reader) (Alignment, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return Alignment{}, fmt.Errorf("stockholm: empty input")
	}
	first := strings.ToLower(strings.Trim(sc.Text(), " #"))
	if first != "stockholm 1.0" {
		return Alignment{}, fmt.Errorf("stockholm: bad header %q", sc.Text())
	}

	var a Alignment
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "//") {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Alignment{}, fmt.Errorf("stockholm: malformed line %q", line)
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		a.Rows = append(a.Rows, rowRecord(name, []byte(fields[len(fields)-1])))
	}
	if err := sc.Err(); err != nil {
		return Alignment{}, fmt.Errorf("stockholm: %w", err)
	}
	if err := a.validate(); err != nil {
		return Alignment{}, fmt.Errorf("stockholm: %w", err)
	}
	return a, nil
}
