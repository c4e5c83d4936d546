// Package pipeline runs the detector build end to end: select, align,
// convert, build, assemble validation sets, search, evaluate, plot.
// Stages are strictly sequential; each writes its artifact to disk and
// any failure aborts the run with an error naming the stage.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kunitzscan/internal/align"
	"kunitzscan/internal/chart"
	"kunitzscan/internal/cmdutil"
	"kunitzscan/internal/entropy"
	"kunitzscan/internal/extern"
	"kunitzscan/internal/fasta"
	"kunitzscan/internal/hmmer"
	"kunitzscan/internal/metrics"
	"kunitzscan/internal/report"
	"kunitzscan/internal/seqselect"
	"kunitzscan/internal/validation"
)

// Config carries every resolved run parameter.
type Config struct {
	Database  string
	Outdir    string
	EValue    float64
	Negatives int
	Seed      int64
	Filter    seqselect.Filter

	// Executable overrides; empty means PATH lookup by default name.
	Clustalo  string
	HMMBuild  string
	HMMSearch string

	Quiet bool
	Log   io.Writer // progress + tool stderr; nil discards
}

// Paths is the fixed artifact layout under Outdir.
type Paths struct {
	Training   string
	Aligned    string
	Stockholm  string
	HMM        string
	Positives  string
	Negatives  string
	TestSet    string
	HitTable   string
	MetricsPNG string
	EntropyPNG string
	EntropyTSV string
	Report     string
}

// Layout returns the artifact paths for an output directory.
func Layout(outdir string) Paths {
	return Paths{
		Training:   filepath.Join(outdir, "train", "training.fasta"),
		Aligned:    filepath.Join(outdir, "train", "training.afa"),
		Stockholm:  filepath.Join(outdir, "train", "training.sto"),
		HMM:        filepath.Join(outdir, "train", "kunitz.hmm"),
		Positives:  filepath.Join(outdir, "validation", "positives.fasta"),
		Negatives:  filepath.Join(outdir, "validation", "negatives.fasta"),
		TestSet:    filepath.Join(outdir, "validation", "test_set.fasta"),
		HitTable:   filepath.Join(outdir, "validation", "hits.tbl"),
		MetricsPNG: filepath.Join(outdir, "metrics", "performance.png"),
		EntropyPNG: filepath.Join(outdir, "metrics", "entropy.png"),
		EntropyTSV: filepath.Join(outdir, "metrics", "entropy.tsv"),
		Report:     filepath.Join(outdir, "report.json"),
	}
}

// Run executes the pipeline and returns the populated run report.
func Run(ctx context.Context, cfg Config) (*report.Report, error) {
	log := cfg.Log
	if log == nil {
		log = io.Discard
	}
	if _, err := os.Stat(cfg.Database); err != nil {
		return nil, fmt.Errorf("select: database: %w", err)
	}
	p := Layout(cfg.Outdir)
	rep := report.New(report.Inputs{
		Database:  cfg.Database,
		Organism:  cfg.Filter.Organism,
		Keyword:   cfg.Filter.Keyword,
		EValue:    cfg.EValue,
		Negatives: cfg.Negatives,
		Seed:      cfg.Seed,
	})

	// 1. Select training sequences.
	cmdutil.Logf(log, cfg.Quiet, "selecting %q sequences for %q...", cfg.Filter.Keyword, cfg.Filter.Organism)
	part, err := seqselect.Split(ctx, cfg.Database, cfg.Filter)
	if err != nil {
		return nil, err
	}
	rep.Counts.Training = len(part.Training)
	if err := fasta.WriteFile(p.Training, part.Training); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	rep.Artifacts["training"] = p.Training

	// 2. Align with Clustal Omega.
	cmdutil.Logf(log, cfg.Quiet, "aligning %d training sequences...", len(part.Training))
	co := extern.Clustalo{Path: cfg.Clustalo, InFile: p.Training, OutFile: p.Aligned}
	if err := co.Run(ctx, log); err != nil {
		return nil, err
	}
	rep.Artifacts["alignment"] = p.Aligned

	// 3. Convert to Stockholm.
	msa, err := readAlignment(p.Aligned)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	if err := writeStockholm(p.Stockholm, msa); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	rep.Artifacts["stockholm"] = p.Stockholm

	// 4. Build the profile HMM.
	cmdutil.Logf(log, cfg.Quiet, "building profile HMM...")
	hb := extern.HMMBuild{Path: cfg.HMMBuild, MSAFile: p.Stockholm, HMMFile: p.HMM}
	if err := hb.Run(ctx, log); err != nil {
		return nil, err
	}
	rep.Artifacts["hmm"] = p.HMM

	// 5. Assemble validation sets.
	cmdutil.Logf(log, cfg.Quiet, "assembling validation sets (%d negatives, seed %d)...", cfg.Negatives, cfg.Seed)
	sets := validation.Assemble(part.HeldOut, part.Others, cfg.Negatives, cfg.Seed)
	rep.Counts.Positives = len(sets.Positives)
	rep.Counts.Negatives = len(sets.Negatives)
	for path, recs := range map[string][]fasta.Record{
		p.Positives: sets.Positives,
		p.Negatives: sets.Negatives,
		p.TestSet:   sets.Corpus(),
	} {
		if err := fasta.WriteFile(path, recs); err != nil {
			return nil, fmt.Errorf("validation: %w", err)
		}
	}
	rep.Artifacts["test_set"] = p.TestSet

	// 6. Search the corpus against the model.
	cmdutil.Logf(log, cfg.Quiet, "running hmmsearch over %d sequences...", len(sets.Positives)+len(sets.Negatives))
	hs := extern.HMMSearch{Path: cfg.HMMSearch, HMMFile: p.HMM, SeqFile: p.TestSet, TblFile: p.HitTable}
	if err := hs.Run(ctx, log); err != nil {
		return nil, err
	}
	rep.Artifacts["hits"] = p.HitTable

	// 7. Evaluate.
	hits, err := hmmer.ParseTableFile(p.HitTable)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	called := hmmer.HitSet(hits, cfg.EValue)
	rep.Counts.Hits = len(called)
	conf := metrics.Count(validation.IDs(sets.Positives), validation.IDs(sets.Negatives), called)
	rep.Metrics = metrics.Summarize(conf)
	if err := chart.MetricsBar(rep.Metrics, p.MetricsPNG); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	rep.Artifacts["metrics_chart"] = p.MetricsPNG

	// 8. Entropy profile of the training alignment.
	cmdutil.Logf(log, cfg.Quiet, "computing per-column entropy...")
	profile := entropy.Profile(msa)
	if err := WriteEntropyTSV(p.EntropyTSV, profile); err != nil {
		return nil, fmt.Errorf("entropy: %w", err)
	}
	if err := chart.EntropyLine(profile, p.EntropyPNG); err != nil {
		return nil, fmt.Errorf("entropy: %w", err)
	}
	rep.Artifacts["entropy_chart"] = p.EntropyPNG

	if err := rep.WriteFile(p.Report); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return rep, nil
}

func readAlignment(path string) (align.Alignment, error) {
	fh, err := os.Open(path)
	if err != nil {
		return align.Alignment{}, err
	}
	defer fh.Close()
	return align.ReadFasta(fh)
}

func writeStockholm(path string, a align.Alignment) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := align.WriteStockholm(fh, a); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

// WriteEntropyTSV writes one "position entropy" row per column
// (1-based positions).
func WriteEntropyTSV(path string, profile []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(fh, "position\tentropy"); err != nil {
		_ = fh.Close()
		return err
	}
	for i, v := range profile {
		if _, err := fmt.Fprintf(fh, "%d\t%.6f\n", i+1, v); err != nil {
			_ = fh.Close()
			return err
		}
	}
	return fh.Close()
}
