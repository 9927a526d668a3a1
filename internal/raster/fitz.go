// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzOpener opens documents with MuPDF via go-fitz.
type FitzOpener struct{}

// Open opens the PDF at path. Corrupt or password-protected files fail here.
func (FitzOpener) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &fitzDocument{doc: doc}, nil
}

type fitzDocument struct {
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) Render(page int, dpi int) (image.Image, error) {
	img, err := d.doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page+1, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
