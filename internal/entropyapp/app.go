// Package entropyapp is the standalone entropy-plot command.
package entropyapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"kunitzscan/internal/align"
	"kunitzscan/internal/chart"
	"kunitzscan/internal/entropy"
	"kunitzscan/internal/entropycli"
	"kunitzscan/internal/pipeline"
	"kunitzscan/internal/version"
)

func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := entropycli.NewFlagSet("entropy-plot")
	fs.SetOutput(io.Discard)

	opts, err := entropycli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "entropy-plot version %s\n", version.Version)
		return 0
	}

	fh, err := os.Open(opts.Alignment)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	msa, err := align.ReadFasta(fh)
	_ = fh.Close()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", opts.Alignment, err)
		return 1
	}

	profile := entropy.Profile(msa)
	if opts.TSV != "" {
		if err := pipeline.WriteEntropyTSV(opts.TSV, profile); err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 1
		}
	}
	if err := chart.EntropyLine(profile, opts.Out); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	_, _ = fmt.Fprintf(outw, "%s: %d columns, chart written to %s\n",
		opts.Alignment, len(profile), opts.Out)
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
