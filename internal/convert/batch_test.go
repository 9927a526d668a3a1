// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfpress/pkg/types"
)

// setupTree builds docs/a.pdf, docs/bad.pdf and docs/sub/b.pdf plus an
// unrelated text file, returning the tree root.
func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writeInput(t, docs, "a.pdf")
	writeInput(t, docs, "bad.pdf")
	writeInput(t, docs, filepath.Join("sub", "b.pdf"))
	writeInput(t, docs, "notes.txt")
	return docs
}

func TestDiscover(t *testing.T) {
	docs := setupTree(t)

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{
			name: "flat ignores subdirectories",
			want: []string{"a.pdf", "bad.pdf"},
		},
		{
			name:      "recursive finds the tree",
			recursive: true,
			want:      []string{"a.pdf", "bad.pdf", filepath.Join("sub", "b.pdf")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(docs, "*.pdf", tt.recursive)
			if err != nil {
				t.Fatalf("Discover: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), "*.pdf", false); err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestRunBatch(t *testing.T) {
	docs := setupTree(t)
	out := filepath.Join(filepath.Dir(docs), "out")

	op := &fakeOpener{
		pages:    map[string]int{"a.pdf": 2, "b.pdf": 3},
		failures: map[string]bool{"bad.pdf": true},
	}

	cfg := testConfig()
	cfg.Batch.Recursive = true

	var log bytes.Buffer
	result, err := RunBatch(op, BatchJob{InputDir: docs, OutputDir: out}, rand.New(rand.NewSource(1)), cfg, &log)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}

	// The tree is mirrored under the output directory.
	for _, rel := range []string{"a.pdf", filepath.Join("sub", "b.pdf")} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("expected mirrored output %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "bad.pdf")); err == nil {
		t.Error("failed input should not leave an output file")
	}

	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain a summary line")
	}
}

func TestRunBatchNonRecursive(t *testing.T) {
	docs := setupTree(t)
	out := filepath.Join(filepath.Dir(docs), "out")

	op := &fakeOpener{pages: map[string]int{"a.pdf": 1, "bad.pdf": 1}}
	result, err := RunBatch(op, BatchJob{InputDir: docs, OutputDir: out}, rand.New(rand.NewSource(1)), testConfig(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if result.Total() != 2 {
		t.Errorf("total = %d, want 2 (nested files ignored without recursive)", result.Total())
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "b.pdf")); err == nil {
		t.Error("nested file should not be converted without recursive")
	}
}

func TestRunBatchSkipExisting(t *testing.T) {
	docs := setupTree(t)
	out := filepath.Join(filepath.Dir(docs), "out")

	// Pre-create the mirrored output for a.pdf.
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(out, "a.pdf"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	op := &fakeOpener{pages: map[string]int{"bad.pdf": 1}}
	cfg := testConfig()
	cfg.Batch.SkipExisting = true

	result, err := RunBatch(op, BatchJob{InputDir: docs, OutputDir: out}, rand.New(rand.NewSource(1)), cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
}

func TestRunBatchSample(t *testing.T) {
	docs := setupTree(t)

	cfg := testConfig()
	cfg.Sample.Dir = filepath.Join(filepath.Dir(docs), "previews")

	op := &fakeOpener{
		pages:    map[string]int{"a.pdf": 4},
		failures: map[string]bool{"bad.pdf": true},
	}
	result, err := RunBatch(op, BatchJob{InputDir: docs, Sample: true}, rand.New(rand.NewSource(1)), cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if result.Converted != 1 || result.Failed != 1 {
		t.Errorf("converted/failed = %d/%d, want 1/1", result.Converted, result.Failed)
	}
	for _, e := range result.Entries {
		if e.Status != types.StatusConverted {
			continue
		}
		if e.SamplePage == 0 {
			t.Errorf("sample entry for %s should record the sampled page", e.InputPath)
		}
		if filepath.Dir(e.OutputPath) != cfg.Sample.Dir {
			t.Errorf("sample output %s should live under %s", e.OutputPath, cfg.Sample.Dir)
		}
	}
}

func TestRunBatchEmptyDir(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer
	result, err := RunBatch(&fakeOpener{}, BatchJob{InputDir: dir, OutputDir: t.TempDir()}, rand.New(rand.NewSource(1)), testConfig(), &log)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if result.Total() != 0 {
		t.Errorf("total = %d, want 0", result.Total())
	}
	if !strings.Contains(log.String(), "no files matching") {
		t.Error("empty directory should be reported")
	}
}

func TestWriteReport(t *testing.T) {
	docs := setupTree(t)
	out := filepath.Join(filepath.Dir(docs), "out")

	op := &fakeOpener{
		pages:    map[string]int{"a.pdf": 2},
		failures: map[string]bool{"bad.pdf": true},
	}
	result, err := RunBatch(op, BatchJob{InputDir: docs, OutputDir: out}, rand.New(rand.NewSource(1)), testConfig(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	reportPath := filepath.Join(filepath.Dir(docs), "report", "run.yaml")
	if err := WriteReport(reportPath, result); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatalf("parsing report: %v", err)
	}
	if rep.Converted != result.Converted || rep.Failed != result.Failed || rep.Total != result.Total() {
		t.Errorf("report counts %+v do not match result %+v", rep, result)
	}
	if len(rep.Files) != len(result.Entries) {
		t.Errorf("report lists %d files, want %d", len(rep.Files), len(result.Entries))
	}
}
