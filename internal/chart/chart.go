// Package chart renders the PNG figures: a bar chart of the evaluation
// metrics and a line chart of per-column alignment entropy.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"kunitzscan/internal/metrics"
)

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// MetricsBar writes a bar chart of the defined metrics to path.
// Undefined metrics are left off the axis rather than drawn as zero.
func MetricsBar(s metrics.Summary, path string) error {
	type bar struct {
		name string
		m    metrics.Metric
	}
	all := []bar{
		{"Precision", s.Precision},
		{"Recall", s.Recall},
		{"F1", s.F1},
		{"Accuracy", s.Accuracy},
	}
	var (
		names []string
		vals  plotter.Values
	)
	for _, b := range all {
		if b.m.Defined {
			names = append(names, b.name)
			vals = append(vals, b.m.Value)
		}
	}
	if len(vals) == 0 {
		return fmt.Errorf("chart: no defined metrics to plot")
	}

	p := plot.New()
	p.Title.Text = "Model performance"
	p.Y.Label.Text = "Score"
	p.Y.Min, p.Y.Max = 0, 1

	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// EntropyLine writes a line chart of per-column entropy to path.
func EntropyLine(values []float64, path string) error {
	if len(values) == 0 {
		return fmt.Errorf("chart: empty entropy profile")
	}
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}

	p := plot.New()
	p.Title.Text = "Per-column entropy"
	p.X.Label.Text = "Alignment position"
	p.Y.Label.Text = "Entropy (bits)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	p.Add(line)

	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
