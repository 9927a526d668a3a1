// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/pdfpress/internal/raster"
	"github.com/pdiddy/pdfpress/pkg/types"
)

// BatchJob describes one batch invocation.
type BatchJob struct {
	InputDir  string
	OutputDir string

	// Sample converts one page per discovered file into the sample directory
	// instead of mirroring the tree.
	Sample bool

	// SamplePage is the 1-based page to sample; zero picks randomly per file.
	SamplePage int
}

// BatchResult accumulates per-file outcomes of a batch run. One file failing
// never aborts the run; the failure is recorded and the batch continues.
type BatchResult struct {
	Entries []types.Result

	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Discover returns the relative paths of files under dir whose base name
// matches pattern. With recursive set the whole tree is searched; otherwise
// only dir itself. Results are sorted so runs are deterministic.
func Discover(dir, pattern string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory %s: not a directory", dir)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if ok, _ := filepath.Match(pattern, d.Name()); !ok {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ok, _ := filepath.Match(pattern, e.Name()); ok {
				files = append(files, e.Name())
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// RunBatch converts every matching file under job.InputDir, mirroring the
// relative directory structure under job.OutputDir. Per-file status lines and
// the final summary go to w. The returned error covers discovery problems
// only; individual conversion failures live in the result.
func RunBatch(op raster.Opener, job BatchJob, rng *rand.Rand, cfg types.Config, w io.Writer) (BatchResult, error) {
	var result BatchResult

	files, err := Discover(job.InputDir, cfg.Batch.Pattern, cfg.Batch.Recursive)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "no files matching %q in %s\n", cfg.Batch.Pattern, job.InputDir)
		return result, nil
	}

	fmt.Fprintf(w, "found %d file(s) in %s\n", len(files), job.InputDir)

	for i, rel := range files {
		inPath := filepath.Join(job.InputDir, rel)
		fmt.Fprintf(w, "\n[%d/%d] %s\n", i+1, len(files), rel)

		var res types.Result
		if job.Sample {
			res, _ = SampleConvert(op, inPath, "", job.SamplePage, rng, cfg, w)
		} else {
			outPath := filepath.Join(job.OutputDir, rel)
			if cfg.Batch.SkipExisting {
				if _, statErr := os.Stat(outPath); statErr == nil {
					fmt.Fprintf(w, "skipped: %s (output exists)\n", rel)
					result.Skipped++
					result.Entries = append(result.Entries, types.Result{
						InputPath:  inPath,
						OutputPath: outPath,
						Status:     types.StatusSkipped,
					})
					continue
				}
			}
			res, _ = Convert(op, inPath, outPath, cfg, w)
		}

		switch res.Status {
		case types.StatusConverted:
			result.Converted++
			fmt.Fprintf(w, "converted: %s (%s -> %s)\n", rel, formatBytes(res.InputBytes), formatBytes(res.OutputBytes))
		case types.StatusFailed:
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%s)\n", rel, res.Error)
		}
		result.Entries = append(result.Entries, res)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// formatBytes renders a byte count as MB with two decimals, matching the
// per-file status lines.
func formatBytes(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}
