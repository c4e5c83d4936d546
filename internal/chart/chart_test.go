package chart

import (
	"os"
	"path/filepath"
	"testing"

	"kunitzscan/internal/metrics"
)

func pngExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("chart file is empty")
	}
	// PNG magic.
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) < 8 || b[1] != 'P' || b[2] != 'N' || b[3] != 'G' {
		t.Fatalf("not a PNG file")
	}
}

func TestMetricsBar(t *testing.T) {
	s := metrics.Summarize(metrics.Confusion{TP: 3, TN: 2})
	path := filepath.Join(t.TempDir(), "metrics", "performance.png")
	if err := MetricsBar(s, path); err != nil {
		t.Fatalf("render: %v", err)
	}
	pngExists(t, path)
}

func TestMetricsBarSkipsUndefined(t *testing.T) {
	// Only accuracy is defined here; render must still succeed.
	s := metrics.Summarize(metrics.Confusion{TN: 5})
	path := filepath.Join(t.TempDir(), "performance.png")
	if err := MetricsBar(s, path); err != nil {
		t.Fatalf("render with undefined metrics: %v", err)
	}
	pngExists(t, path)
}

func TestMetricsBarAllUndefined(t *testing.T) {
	if err := MetricsBar(metrics.Summary{}, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatalf("expected error with nothing to plot")
	}
}

func TestEntropyLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entropy.png")
	if err := EntropyLine([]float64{0, 1, 2, 0.5, 0}, path); err != nil {
		t.Fatalf("render: %v", err)
	}
	pngExists(t, path)
}

func TestEntropyLineEmpty(t *testing.T) {
	if err := EntropyLine(nil, filepath.Join(t.TempDir(), "e.png")); err == nil {
		t.Fatalf("expected error on empty profile")
	}
}
