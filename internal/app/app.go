// Package app wires flags, configuration, and the pipeline into the
// kunitzscan command.
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"kunitzscan/internal/cli"
	"kunitzscan/internal/config"
	"kunitzscan/internal/pipeline"
	"kunitzscan/internal/seqselect"
	"kunitzscan/internal/version"
	"kunitzscan/internal/writers"
)

// RunContext parses argv, runs the pipeline, and returns the process
// exit code: 0 success, 2 usage error, 1 pipeline failure.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("kunitzscan")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "kunitzscan version %s\n", version.Version)
		return 0
	}

	if opts.ConfigFile != "" {
		cf, err := config.Load(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		merge(opts, cf)
	}
	if err := opts.Finalize(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	rep, err := pipeline.Run(parent, pipeline.Config{
		Database:  opts.Swissprot,
		Outdir:    opts.Outdir,
		EValue:    opts.EValue,
		Negatives: opts.Negatives,
		Seed:      opts.Seed,
		Filter:    seqselect.Filter{Organism: opts.Organism, Keyword: opts.Keyword},
		Clustalo:  opts.Clustalo,
		HMMBuild:  opts.HMMBuild,
		HMMSearch: opts.HMMSearch,
		Quiet:     opts.Quiet,
		Log:       stderr,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if err := rep.Metrics.WriteTSV(outw); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		_, _ = fmt.Fprintln(stderr, e)
		return 1
	}
	return 0
}

// merge fills options from the config file where the user did not pass
// the flag explicitly.
func merge(o *cli.Options, f config.File) {
	setS := func(name string, dst *string, src *string) {
		if src != nil && !o.Explicit(name) {
			*dst = *src
		}
	}
	setS("swissprot", &o.Swissprot, f.Swissprot)
	setS("outdir", &o.Outdir, f.Outdir)
	setS("organism", &o.Organism, f.Organism)
	setS("keyword", &o.Keyword, f.Keyword)
	setS("clustalo", &o.Clustalo, f.Clustalo)
	setS("hmmbuild", &o.HMMBuild, f.HMMBuild)
	setS("hmmsearch", &o.HMMSearch, f.HMMSearch)
	if f.EValue != nil && !o.Explicit("evalue") {
		o.EValue = *f.EValue
	}
	if f.Negatives != nil && !o.Explicit("negatives") {
		o.Negatives = *f.Negatives
	}
	if f.Seed != nil && !o.Explicit("seed") {
		o.Seed = *f.Seed
	}
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
