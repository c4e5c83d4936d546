package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"kunitzscan/internal/app"
)

// Toy database: 3 human Kunitz records for training, 3 non-human Kunitz
// records as held-out positives, 2 non-Kunitz records as the negative
// pool. Training sequences share a length so the identity "alignment"
// produced by the clustalo stub is valid aligned FASTA.
const toyDB = `>t1 Kunitz-type inhibitor 1 OS=Homo sapiens
RPDFCLEPPYTGPCKARIIRYFYNAKAGLCQTFVYGGCRAKRNNFKSAEDCMRTCGGAIG
>t2 Kunitz-type inhibitor 2 OS=Homo sapiens
RPDFCLEPPYTGPCRARIIRYFYNAKAGLCQTFVYGGCRAKRNNFKSAEECMRTCGGAIG
>t3 Kunitz-type inhibitor 3 OS=Homo sapiens
RPDFCLEPPYTGPCKARIIRYFYNAKAGLCETFVYGGCRAKRNNFKSAEDCMRTCGGAIG
>p1 Kunitz-type inhibitor OS=Bos taurus
RPDFCLEPPYTGPCKARIIRYFYNAKAGLCQTFVYGGCRAKRNNFKSAEDCMRTCGGAG
>p2 Kunitz-type inhibitor OS=Sus scrofa
RPDYCLEPPYTGPCKARIIRYFYNAKAGLCQTFVYGGCRAKRNNFKSAEDCMRTCGGAG
>p3 Kunitz-type inhibitor OS=Mus musculus
RPDFCLEPPYSGPCKARIIRYFYNAKAGLCQTFVYGGCRAKRNNFKSAEDCMRTCGGAG
>n1 Hemoglobin subunit alpha OS=Homo sapiens
MVLSPADKTNVKAAWGKVGAHAGEYGAEALERMFLSFPTTKTYFPHF
>n2 Lysozyme C OS=Gallus gallus
MRSLLILVLCFLPLAALGKVFGRCELAAAMKRHGLDNYRGYSLGNWVCAAKFESNFNT
`

// stubs writes fake clustalo/hmmbuild/hmmsearch executables. The
// clustalo stub copies its input (an identity alignment), hmmbuild
// writes a placeholder model, and hmmsearch emits a strong hit for
// every Kunitz-annotated record in the searched file.
func stubs(t *testing.T) (clustalo, hmmbuild, hmmsearch string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
			t.Fatalf("stub %s: %v", name, err)
		}
		return p
	}
	clustalo = write("clustalo", `cp "$2" "$4"`+"\n")
	hmmbuild = write("hmmbuild", `echo "HMMER3/f [stub]" > "$1"`+"\n")
	hmmsearch = write("hmmsearch", `TBL=$2
SEQ=$4
{
  echo "# target name accession query name accession E-value score bias"
  grep '^>' "$SEQ" | grep -i kunitz | while read -r line; do
    id=$(printf '%s' "$line" | sed 's/^>//' | awk '{print $1}')
    echo "$id - kunitz - 1.0e-30 100.0 0.1 1.0e-30 100.0 0.1"
  done
} > "$TBL"
`)
	return clustalo, hmmbuild, hmmsearch
}

func writeDB(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sprot.fasta")
	if err := os.WriteFile(p, []byte(toyDB), 0o644); err != nil {
		t.Fatalf("write db: %v", err)
	}
	return p
}

func runPipeline(t *testing.T, outdir string, extra ...string) (int, string, string) {
	t.Helper()
	clustalo, hmmbuild, hmmsearch := stubs(t)
	argv := append([]string{
		"--swissprot", writeDB(t),
		"--outdir", outdir,
		"--clustalo", clustalo,
		"--hmmbuild", hmmbuild,
		"--hmmsearch", hmmsearch,
		"--quiet",
	}, extra...)
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestEndToEndPerfectRecovery(t *testing.T) {
	outdir := filepath.Join(t.TempDir(), "results")
	code, out, errOut := runPipeline(t, outdir)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut)
	}
	for _, want := range []string{
		"tp\t3", "fp\t0", "fn\t0", "tn\t2",
		"precision\t1.000", "recall\t1.000", "f1\t1.000", "accuracy\t1.000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	for _, rel := range []string{
		"train/training.fasta", "train/training.afa", "train/training.sto",
		"train/kunitz.hmm", "validation/positives.fasta",
		"validation/negatives.fasta", "validation/test_set.fasta",
		"validation/hits.tbl", "metrics/performance.png",
		"metrics/entropy.png", "metrics/entropy.tsv", "report.json",
	} {
		if _, err := os.Stat(filepath.Join(outdir, rel)); err != nil {
			t.Errorf("artifact %s missing: %v", rel, err)
		}
	}
	sto, err := os.ReadFile(filepath.Join(outdir, "train", "training.sto"))
	if err != nil {
		t.Fatalf("read stockholm: %v", err)
	}
	if !strings.HasPrefix(string(sto), "# STOCKHOLM 1.0") {
		t.Errorf("stockholm conversion malformed:\n%s", sto)
	}
}

func TestSeedReproducibility(t *testing.T) {
	read := func(outdir string) string {
		code, _, errOut := runPipeline(t, outdir, "--seed", "7", "--negatives", "2")
		if code != 0 {
			t.Fatalf("exit %d, stderr: %s", code, errOut)
		}
		b, err := os.ReadFile(filepath.Join(outdir, "validation", "negatives.fasta"))
		if err != nil {
			t.Fatalf("read negatives: %v", err)
		}
		return string(b)
	}
	a := read(filepath.Join(t.TempDir(), "run1"))
	b := read(filepath.Join(t.TempDir(), "run2"))
	if a != b {
		t.Fatalf("same seed produced different negatives:\n%s\n---\n%s", a, b)
	}
}

func TestEmptySelectionFails(t *testing.T) {
	code, _, errOut := runPipeline(t, filepath.Join(t.TempDir(), "out"),
		"--keyword", "no-such-domain")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut, "select") {
		t.Errorf("error does not name the select stage: %s", errOut)
	}
}

func TestUsageErrors(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--evalue", "0", "--swissprot", "x"}, &out, &errBuf); code != 2 {
		t.Fatalf("exit = %d, want 2", code)
	}
	out.Reset()
	errBuf.Reset()
	if code := app.Run([]string{}, &out, &errBuf); code != 2 {
		t.Fatalf("no-args exit = %d, want 2", code)
	}
}

func TestVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "kunitzscan version") {
		t.Fatalf("version output: %q", out.String())
	}
}

func TestConfigFileMerge(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(cfg, []byte("keyword: no-such-domain\n"), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	// Config keyword applies (empty selection), proving the merge ran.
	code, _, errOut := runPipeline(t, filepath.Join(t.TempDir(), "out"), "--config", cfg)
	if code != 1 || !strings.Contains(errOut, "no-such-domain") {
		t.Fatalf("config not applied: exit %d, stderr %s", code, errOut)
	}
	// An explicit flag beats the config file.
	code, _, _ = runPipeline(t, filepath.Join(t.TempDir(), "out2"),
		"--config", cfg, "--keyword", "kunitz")
	if code != 0 {
		t.Fatalf("explicit flag should override config, exit %d", code)
	}
}

// TestRealTools exercises the genuine binaries when they are installed.
func TestRealTools(t *testing.T) {
	for _, tool := range []string{"clustalo", "hmmbuild", "hmmsearch"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}
	outdir := filepath.Join(t.TempDir(), "results")
	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--swissprot", writeDB(t),
		"--outdir", outdir,
		"--evalue", "1", // lenient threshold for the toy model
		"--quiet",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errBuf.String())
	}
	for _, want := range []string{"recall\t1.000", "precision\t1.000"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
}
