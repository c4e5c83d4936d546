package hmmer

import (
	"strings"
	"testing"
)

const table = `#                                                               --- full sequence ---- --- best 1 domain ----
# target name        accession  query name           accession    E-value  score  bias   E-value  score  bias
#------------------- ---------- -------------------- ---------- --------- ------ ----- --------- ------ -----
sp|P00974|BPT1_BOVIN -          kunitz               -            1.2e-30   99.1   0.1   1.5e-30   98.8   0.1
sp|P0DJ63|KUN1_MOUSE -          kunitz               -            3.4e-08   25.0   0.0   5.1e-08   24.4   0.0
sp|P99999|CYC_HUMAN  -          kunitz               -                0.91    4.2   0.0      1.3    3.7   0.0
#
# Program:         hmmsearch
`

func TestParseTable(t *testing.T) {
	hits, err := ParseTable(strings.NewReader(table))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("hits = %d, want 3", len(hits))
	}
	h := hits[0]
	if h.Target != "sp|P00974|BPT1_BOVIN" || h.Query != "kunitz" {
		t.Errorf("bad identifiers: %+v", h)
	}
	if h.EValue != 1.2e-30 || h.Score != 99.1 {
		t.Errorf("bad numbers: %+v", h)
	}
}

func TestParseTableSkipsMalformed(t *testing.T) {
	bad := "seq1 - q - not-a-number 1.0 0.0\nseq2 - q - 1e-10 50.0 0.0\n"
	hits, err := ParseTable(strings.NewReader(bad))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(hits) != 1 || hits[0].Target != "seq2" {
		t.Fatalf("expected only seq2, got %+v", hits)
	}
}

func TestHitSetThreshold(t *testing.T) {
	hits, err := ParseTable(strings.NewReader(table))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	set := HitSet(hits, 1e-5)
	if len(set) != 2 {
		t.Fatalf("set = %v, want 2 entries", set)
	}
	if set["sp|P99999|CYC_HUMAN"] {
		t.Errorf("weak hit passed the cutoff")
	}
	if !set["sp|P0DJ63|KUN1_MOUSE"] {
		t.Errorf("boundary hit 3.4e-08 should pass 1e-5")
	}
}
