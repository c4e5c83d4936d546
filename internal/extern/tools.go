// Package extern wraps the external alignment and profile-HMM binaries.
// Each tool is an opaque collaborator: we build its argument list, run
// it to completion, and treat any nonzero exit as a hard failure with
// the captured stderr attached. No retries.
package extern

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Clustalo invokes Clustal Omega to align a FASTA file.
type Clustalo struct {
	Path    string // executable, default "clustalo"
	InFile  string
	OutFile string
	Format  string // clustalo --outfmt value, default "fasta"
}

func (c Clustalo) exe() string {
	if c.Path == "" {
		return "clustalo"
	}
	return c.Path
}

// Args returns the clustalo argument list. --force overwrites an
// existing output file, matching repeated runs into the same outdir.
func (c Clustalo) Args() []string {
	format := c.Format
	if format == "" {
		format = "fasta"
	}
	return []string{"-i", c.InFile, "-o", c.OutFile, "--force", "--outfmt", format}
}

func (c Clustalo) Run(ctx context.Context, stderr io.Writer) error {
	return run(ctx, "clustalo", c.exe(), c.Args(), stderr)
}

// HMMBuild invokes hmmbuild to construct a profile HMM from a
// Stockholm alignment.
type HMMBuild struct {
	Path    string // default "hmmbuild"
	MSAFile string
	HMMFile string
}

func (h HMMBuild) exe() string {
	if h.Path == "" {
		return "hmmbuild"
	}
	return h.Path
}

func (h HMMBuild) Args() []string {
	return []string{h.HMMFile, h.MSAFile}
}

func (h HMMBuild) Run(ctx context.Context, stderr io.Writer) error {
	return run(ctx, "hmmbuild", h.exe(), h.Args(), stderr)
}

// HMMSearch invokes hmmsearch, writing the per-target table to TblFile.
type HMMSearch struct {
	Path    string // default "hmmsearch"
	HMMFile string
	SeqFile string
	TblFile string
}

func (h HMMSearch) exe() string {
	if h.Path == "" {
		return "hmmsearch"
	}
	return h.Path
}

func (h HMMSearch) Args() []string {
	return []string{"--tblout", h.TblFile, h.HMMFile, h.SeqFile}
}

func (h HMMSearch) Run(ctx context.Context, stderr io.Writer) error {
	return run(ctx, "hmmsearch", h.exe(), h.Args(), stderr)
}

// run executes one tool. The tool's stdout is discarded (all tools here
// write their results to files); stderr is teed to the caller and kept
// for error reporting.
func run(ctx context.Context, stage, exe string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, exe, args...)
	var errBuf bytes.Buffer
	if stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, &errBuf)
	} else {
		cmd.Stderr = &errBuf
	}
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", stage, ctx.Err())
		}
		msg := strings.TrimSpace(errBuf.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", stage, err, lastLine(msg))
		}
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}

// lastLine keeps error messages one-line; tool stderr can be chatty.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if t := strings.TrimSpace(lines[i]); t != "" {
			return t
		}
	}
	return s
}
