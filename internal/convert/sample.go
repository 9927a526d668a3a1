// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfpress/pkg/types"
)

// PickPage returns the 0-based index of the page to sample. requested is
// 1-based; zero asks for a pseudo-random pick, uniform over the interior
// pages when the document has more than two (covers and trailing blanks make
// poor previews), otherwise the first page.
func PickPage(rng *rand.Rand, total, requested int) (int, error) {
	if total < 1 {
		return 0, fmt.Errorf("document has no pages")
	}
	if requested > 0 {
		if requested > total {
			return 0, fmt.Errorf("page %d out of range: document has %d pages", requested, total)
		}
		return requested - 1, nil
	}
	if total <= 2 {
		return 0, nil
	}
	return 1 + rng.Intn(total-2), nil
}

// SamplePath builds the default output path for a sample conversion,
// e.g. examples/report_sample_page3_dpi100_q90.pdf. Encoding the settings in
// the name lets several previews of the same document sit side by side.
func SamplePath(cfg types.Config, inputPath string, page int) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s_sample_page%d_dpi%d_q%d.pdf",
		stem, page, cfg.Conversion.DPI, cfg.Conversion.Quality)
	return filepath.Join(cfg.Sample.Dir, name)
}
