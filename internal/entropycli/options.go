// Package entropycli parses flags for the standalone entropy-plot tool.
package entropycli

import (
	"errors"
	"flag"
	"fmt"

	"kunitzscan/internal/version"
)

// Options holds the entropy-plot flags.
type Options struct {
	Alignment string
	Out       string
	TSV       string
	Version   bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: per-column Shannon entropy chart for an alignment

Reads an aligned FASTA file and renders entropy (bits, gaps counted as
a symbol) against alignment position.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Alignment, "alignment", "", "aligned FASTA file [*]")
	fs.StringVar(&opt.Out, "out", "entropy.png", "output PNG path [entropy.png]")
	fs.StringVar(&opt.TSV, "tsv", "", "also write a position/entropy TSV")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if opt.Alignment == "" {
		return opt, errors.New("--alignment is required")
	}
	if opt.Out == "" {
		return opt, errors.New("--out must not be empty")
	}
	return opt, nil
}
