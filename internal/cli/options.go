// Package cli parses and validates kunitzscan command-line flags.
package cli

import (
	"errors"
	"flag"
	"fmt"

	"kunitzscan/internal/version"
)

// Options holds all CLI flags for the pipeline command. Fields left at
// their defaults may still be filled from a --config file.
type Options struct {
	// Input
	Swissprot  string
	ConfigFile string

	// Selection
	Organism string
	Keyword  string

	// Evaluation
	EValue    float64
	Negatives int
	Seed      int64

	// External tools
	Clustalo  string
	HMMBuild  string
	HMMSearch string

	// Output
	Outdir string

	// Misc
	Quiet   bool
	Version bool

	// set tracks flags given explicitly, for config-file merging.
	set map[string]bool
}

// Explicit reports whether the named flag was passed on the command line.
func (o *Options) Explicit(name string) bool { return o.set[name] }

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: profile-HMM domain detector pipeline

Builds a Kunitz-domain profile HMM from a SwissProt FASTA database,
scores a labeled validation set, and reports precision/recall/F1/
accuracy plus per-column alignment entropy.

Requires clustalo, hmmbuild, and hmmsearch on PATH (or via flags).

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (*Options, error) {
	opt := &Options{}
	var help bool

	fs.StringVar(&opt.Swissprot, "swissprot", "", "SwissProt FASTA database (plain or .gz) [*]")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run configuration file")

	fs.StringVar(&opt.Organism, "organism", "Homo sapiens", "training organism filter [Homo sapiens]")
	fs.StringVar(&opt.Keyword, "keyword", "kunitz", "annotation keyword filter [kunitz]")

	fs.Float64Var(&opt.EValue, "evalue", 1e-5, "E-value cutoff for hmmsearch hits [1e-5]")
	fs.IntVar(&opt.Negatives, "negatives", 50, "number of negative sequences to sample [50]")
	fs.Int64Var(&opt.Seed, "seed", 42, "random seed for negative sampling [42]")

	fs.StringVar(&opt.Clustalo, "clustalo", "", "path to clustalo executable [clustalo]")
	fs.StringVar(&opt.HMMBuild, "hmmbuild", "", "path to hmmbuild executable [hmmbuild]")
	fs.StringVar(&opt.HMMSearch, "hmmsearch", "", "path to hmmsearch executable [hmmsearch]")

	fs.StringVar(&opt.Outdir, "outdir", "results", "output directory [results]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress output [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	opt.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.set[f.Name] = true })
	if opt.Version {
		return opt, nil
	}
	return opt, opt.validate()
}

func (o *Options) validate() error {
	// --swissprot may come from the config file; required-ness is
	// checked again after merging.
	if o.EValue <= 0 {
		return errors.New("--evalue must be > 0")
	}
	if o.Negatives < 0 {
		return errors.New("--negatives must be ≥ 0")
	}
	if o.Outdir == "" {
		return errors.New("--outdir must not be empty")
	}
	return nil
}

// Finalize checks invariants that must hold after config merging.
func (o *Options) Finalize() error {
	if o.Swissprot == "" {
		return errors.New("--swissprot is required (flag or config file)")
	}
	if o.Organism == "" || o.Keyword == "" {
		return errors.New("--organism and --keyword must not be empty")
	}
	return o.validate()
}
