// Package report writes the machine-readable run report that ties the
// pipeline artifacts to the inputs and metrics that produced them.
package report

import (
	"os"
	"time"

	"github.com/google/uuid"

	"kunitzscan/internal/jsonutil"
	"kunitzscan/internal/metrics"
)

// Inputs records the parameters that determine a run.
type Inputs struct {
	Database  string  `json:"database"`
	Organism  string  `json:"organism"`
	Keyword   string  `json:"keyword"`
	EValue    float64 `json:"evalue"`
	Negatives int     `json:"negatives"`
	Seed      int64   `json:"seed"`
}

// Counts records the size of each sequence set.
type Counts struct {
	Training  int `json:"training"`
	Positives int `json:"positives"`
	Negatives int `json:"negatives"`
	Hits      int `json:"hits"`
}

// Report is the top-level run report.
type Report struct {
	RunID     string            `json:"run_id"`
	CreatedAt time.Time         `json:"created_at"`
	Inputs    Inputs            `json:"inputs"`
	Counts    Counts            `json:"counts"`
	Artifacts map[string]string `json:"artifacts"`
	Metrics   metrics.Summary   `json:"metrics"`
}

// New returns a report with a fresh run ID and timestamp.
func New(in Inputs) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Inputs:    in,
		Artifacts: map[string]string{},
	}
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jsonutil.EncodePretty(fh, r); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
