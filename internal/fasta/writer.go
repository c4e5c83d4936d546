package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LineWidth is the residue wrap width used when writing records.
const LineWidth = 60

// Write emits one record. The header line is ">Desc" when Desc is set,
// ">ID" otherwise; residues are wrapped at LineWidth.
func Write(w io.Writer, r Record) error {
	hdr := r.Desc
	if hdr == "" {
		hdr = r.ID
	}
	if _, err := fmt.Fprintf(w, ">%s\n", hdr); err != nil {
		return err
	}
	for off := 0; off < len(r.Seq); off += LineWidth {
		end := off + LineWidth
		if end > len(r.Seq) {
			end = len(r.Seq)
		}
		if _, err := fmt.Fprintf(w, "%s\n", r.Seq[off:end]); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes records to w in order.
func WriteAll(w io.Writer, recs []Record) error {
	for _, r := range recs {
		if err := Write(w, r); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes records to path, creating parent directories as needed.
func WriteFile(path string, recs []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if err := WriteAll(bw, recs); err != nil {
		_ = fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
