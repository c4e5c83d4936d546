package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is a single FASTA entry. ID is the header token up to the first
// whitespace; Desc is the full header line without the leading '>'.
// Records are never mutated after parsing.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// EachRecord parses FASTA from r and calls visit for every record.
// Returning a non-nil error from visit (e.g. ctx.Err()) stops the scan.
func EachRecord(ctx context.Context, r io.Reader, visit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024 // single-line sequences in SwissProt dumps
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id, desc string
		seq      = make([]byte, 0, 4096)
	)

	flush := func() error {
		if id == "" && len(seq) == 0 {
			return nil
		}
		return visit(Record{ID: id, Desc: desc, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if id != "" {
				if err := flush(); err != nil {
					return err
				}
				seq = seq[:0]
			}
			hdr := bytes.TrimSpace(line[1:])
			desc = string(hdr)
			if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
				id = string(hdr[:i])
			} else {
				id = string(hdr)
			}
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// EachRecordPath opens path (plain, gzip, or "-" for stdin) and streams
// its records through visit.
func EachRecordPath(ctx context.Context, path string, visit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return EachRecord(ctx, rc, visit)
}

// ReadAll slurps every record from path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var recs []Record
	err := EachRecordPath(ctx, path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
