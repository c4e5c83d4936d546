// Package config loads optional YAML run configuration. Values present
// in the file become defaults; explicit command-line flags win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File mirrors the tunable pipeline parameters. Pointer fields
// distinguish "absent" from zero values.
type File struct {
	Swissprot *string  `yaml:"swissprot"`
	Outdir    *string  `yaml:"outdir"`
	EValue    *float64 `yaml:"evalue"`
	Negatives *int     `yaml:"negatives"`
	Seed      *int64   `yaml:"seed"`
	Organism  *string  `yaml:"organism"`
	Keyword   *string  `yaml:"keyword"`
	Clustalo  *string  `yaml:"clustalo"`
	HMMBuild  *string  `yaml:"hmmbuild"`
	HMMSearch *string  `yaml:"hmmsearch"`
}

// Load reads and parses path. Unknown keys are rejected to catch typos.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}
