// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDFs into image-based PDFs: every page is rendered
// to a raster at the configured DPI, JPEG-encoded at the configured quality,
// and reassembled into a fresh PDF whose pages carry nothing but the image.
package convert

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdfpress/internal/raster"
	"github.com/pdiddy/pdfpress/pkg/types"
)

// Convert rasterizes every page of inputPath into outputPath. Per-file
// progress goes to w. The returned Result is populated in both the success
// and the failure case; the error carries the failure category.
func Convert(op raster.Opener, inputPath, outputPath string, cfg types.Config, w io.Writer) (types.Result, error) {
	start := time.Now()
	res := types.Result{InputPath: inputPath, OutputPath: outputPath, Status: types.StatusFailed}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fail(res, start, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath))
	}
	res.InputBytes = info.Size()

	doc, err := op.Open(inputPath)
	if err != nil {
		return fail(res, start, fmt.Errorf("%w: %v", ErrUnreadablePDF, err))
	}
	defer doc.Close()

	total := doc.PageCount()
	if total == 0 {
		return fail(res, start, fmt.Errorf("%w: %s has no pages", ErrUnreadablePDF, inputPath))
	}
	res.Pages = total

	fmt.Fprintf(w, "converting %s (%d pages, dpi=%d quality=%d)\n",
		filepath.Base(inputPath), total, cfg.Conversion.DPI, cfg.Conversion.Quality)

	pages := make([]int, total)
	for i := range pages {
		pages[i] = i
	}
	if err := writePages(doc, pages, outputPath, cfg); err != nil {
		return fail(res, start, err)
	}

	return finish(res, start)
}

// SampleConvert converts a single page of inputPath for a quality preview.
// page is 1-based; zero picks a pseudo-random page from rng. When outputPath
// is empty the sample is written under cfg.Sample.Dir with a name encoding
// the page and settings.
func SampleConvert(op raster.Opener, inputPath, outputPath string, page int, rng *rand.Rand, cfg types.Config, w io.Writer) (types.Result, error) {
	start := time.Now()
	res := types.Result{InputPath: inputPath, OutputPath: outputPath, Status: types.StatusFailed}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fail(res, start, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath))
	}
	res.InputBytes = info.Size()

	doc, err := op.Open(inputPath)
	if err != nil {
		return fail(res, start, fmt.Errorf("%w: %v", ErrUnreadablePDF, err))
	}
	defer doc.Close()

	total := doc.PageCount()
	if total == 0 {
		return fail(res, start, fmt.Errorf("%w: %s has no pages", ErrUnreadablePDF, inputPath))
	}
	res.Pages = total

	idx, err := PickPage(rng, total, page)
	if err != nil {
		return fail(res, start, err)
	}
	res.SamplePage = idx + 1

	if res.OutputPath == "" {
		res.OutputPath = SamplePath(cfg, inputPath, idx+1)
	}

	fmt.Fprintf(w, "sampling page %d of %d from %s (dpi=%d quality=%d)\n",
		idx+1, total, filepath.Base(inputPath), cfg.Conversion.DPI, cfg.Conversion.Quality)

	if err := writePages(doc, []int{idx}, res.OutputPath, cfg); err != nil {
		return fail(res, start, err)
	}

	return finish(res, start)
}

// writePages renders the given 0-based pages, encodes them into a temporary
// directory, and assembles the output PDF. The temporary files are removed
// before returning regardless of outcome.
func writePages(doc raster.Document, pages []int, outputPath string, cfg types.Config) error {
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrWriteFailed, dir, err)
		}
	}

	tmpDir, err := os.MkdirTemp("", "pdfpress-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer os.RemoveAll(tmpDir)

	imgFiles := make([]string, 0, len(pages))
	for _, p := range pages {
		img, err := doc.Render(p, cfg.Conversion.DPI)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
		}
		path, err := raster.EncodePage(tmpDir, fmt.Sprintf("page-%04d", p+1), img, cfg.Conversion.Quality)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
		imgFiles = append(imgFiles, path)
	}

	// pdfcpu appends imported images to an existing output file; a conversion
	// always replaces it.
	if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: replacing %s: %v", ErrWriteFailed, outputPath, err)
	}

	// A nil import configuration sizes each output page to its image, so the
	// new pages match the rendered rasters exactly.
	if err := api.ImportImagesFile(imgFiles, outputPath, nil, nil); err != nil {
		return fmt.Errorf("%w: assembling %s: %v", ErrWriteFailed, outputPath, err)
	}

	if cfg.Output.Optimize {
		if err := api.OptimizeFile(outputPath, "", nil); err != nil {
			return fmt.Errorf("%w: optimizing %s: %v", ErrWriteFailed, outputPath, err)
		}
	}
	return nil
}

func fail(res types.Result, start time.Time, err error) (types.Result, error) {
	res.Status = types.StatusFailed
	res.Error = err.Error()
	res.Duration = time.Since(start)
	return res, err
}

func finish(res types.Result, start time.Time) (types.Result, error) {
	if info, err := os.Stat(res.OutputPath); err == nil {
		res.OutputBytes = info.Size()
	}
	res.Status = types.StatusConverted
	res.Duration = time.Since(start)
	return res, nil
}
