// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdfpress/internal/raster"
	"github.com/pdiddy/pdfpress/pkg/types"
)

// fakeDoc implements raster.Document for testing. Pages render as a small
// gradient so the JPEG encoder has real content to work with.
type fakeDoc struct {
	pages     int
	renderErr error
	closed    bool
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) Render(page int, dpi int) (image.Image, error) {
	if d.renderErr != nil {
		return nil, d.renderErr
	}
	img := image.NewRGBA(image.Rect(0, 0, 120, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 2), uint8(y), uint8(page * 40), 255})
		}
	}
	return img, nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// fakeOpener implements raster.Opener. Documents are keyed by base name;
// names in failures refuse to open, simulating a corrupt file.
type fakeOpener struct {
	pages    map[string]int
	failures map[string]bool
	opened   []*fakeDoc
}

func (o *fakeOpener) Open(path string) (raster.Document, error) {
	name := filepath.Base(path)
	if o.failures[name] {
		return nil, errors.New("cannot parse file")
	}
	n, ok := o.pages[name]
	if !ok {
		n = 1
	}
	doc := &fakeDoc{pages: n}
	o.opened = append(o.opened, doc)
	return doc, nil
}

// writeInput creates a dummy input file; Convert only stats it, the fake
// opener supplies the pages.
func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("%PDF-fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig() types.Config {
	return types.DefaultConfig()
}

func TestConvert(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "report.pdf")
	output := filepath.Join(tmpDir, "out", "flat.pdf")

	op := &fakeOpener{pages: map[string]int{"report.pdf": 3}}
	var log bytes.Buffer

	res, err := Convert(op, input, output, testConfig(), &log)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if res.Status != types.StatusConverted {
		t.Errorf("status = %q, want %q", res.Status, types.StatusConverted)
	}
	if res.Pages != 3 {
		t.Errorf("pages = %d, want 3", res.Pages)
	}

	got, err := api.PageCountFile(output)
	if err != nil {
		t.Fatalf("reading output PDF: %v", err)
	}
	if got != 3 {
		t.Errorf("output page count = %d, want 3", got)
	}
	if res.OutputBytes == 0 {
		t.Error("output size should be recorded")
	}
	if len(op.opened) != 1 || !op.opened[0].closed {
		t.Error("source document should be closed after conversion")
	}
}

func TestConvertSinglePage(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "one.pdf")
	output := filepath.Join(tmpDir, "one-flat.pdf")

	op := &fakeOpener{pages: map[string]int{"one.pdf": 1}}
	res, err := Convert(op, input, output, testConfig(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if res.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Pages)
	}
	got, err := api.PageCountFile(output)
	if err != nil {
		t.Fatalf("reading output PDF: %v", err)
	}
	if got != 1 {
		t.Errorf("output page count = %d, want 1", got)
	}
}

func TestConvertErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		input   string
		opener  *fakeOpener
		wantErr error
	}{
		{
			name:    "missing input",
			input:   filepath.Join(tmpDir, "nope.pdf"),
			opener:  &fakeOpener{},
			wantErr: ErrInputNotFound,
		},
		{
			name:    "corrupt source",
			input:   writeInput(t, tmpDir, "bad.pdf"),
			opener:  &fakeOpener{failures: map[string]bool{"bad.pdf": true}},
			wantErr: ErrUnreadablePDF,
		},
		{
			name:    "empty document",
			input:   writeInput(t, tmpDir, "empty.pdf"),
			opener:  &fakeOpener{pages: map[string]int{"empty.pdf": 0}},
			wantErr: ErrUnreadablePDF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(tmpDir, "out.pdf")
			res, err := Convert(tt.opener, tt.input, output, testConfig(), &bytes.Buffer{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if res.Status != types.StatusFailed {
				t.Errorf("status = %q, want %q", res.Status, types.StatusFailed)
			}
			if res.Error == "" {
				t.Error("failure reason should be recorded in the result")
			}
		})
	}
}

func TestConvertRenderFailure(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "torn.pdf")

	// Rig the document to fail during rendering rather than opening.
	doc := &fakeDoc{pages: 2, renderErr: errors.New("damaged page stream")}
	res, err := Convert(renderOpener{doc}, input, filepath.Join(tmpDir, "out.pdf"), testConfig(), &bytes.Buffer{})
	if !errors.Is(err, ErrUnreadablePDF) {
		t.Fatalf("error = %v, want %v", err, ErrUnreadablePDF)
	}
	if res.Status != types.StatusFailed {
		t.Errorf("status = %q, want %q", res.Status, types.StatusFailed)
	}
	if !doc.closed {
		t.Error("source document should be closed after a failed conversion")
	}
}

// renderOpener hands out a prepared document regardless of path.
type renderOpener struct {
	doc *fakeDoc
}

func (o renderOpener) Open(path string) (raster.Document, error) {
	return o.doc, nil
}
