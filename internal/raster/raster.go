// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders PDF pages to in-memory images and encodes them for
// re-embedding. The MuPDF-backed implementation lives behind the Opener
// interface so the conversion logic can be tested without CGo.
package raster

import "image"

// Document is one open PDF source. Implementations must release native
// resources in Close; callers close a document before moving to the next file.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Render rasterizes the 0-based page at the given resolution.
	Render(page int, dpi int) (image.Image, error)

	Close() error
}

// Opener opens PDF documents from the filesystem.
type Opener interface {
	Open(path string) (Document, error)
}
