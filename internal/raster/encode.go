// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

// EncodePage encodes img as a JPEG at the given quality and writes it into
// dir under base plus the matching extension, returning the written path.
// If JPEG encoding fails the page is written as PNG instead, trading size
// for a lossless fallback.
func EncodePage(dir, base string, img image.Image, quality int) (string, error) {
	ext := ".jpg"
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		buf.Reset()
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("encoding page image: %w", err)
		}
		ext = ".png"
	}
	path := filepath.Join(dir, base+ext)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing page image: %w", err)
	}
	return path, nil
}
