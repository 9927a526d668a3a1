// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfpress/pkg/types"
)

// Report is the YAML document written by batch runs for machine consumption.
type Report struct {
	Converted int            `yaml:"converted"`
	Skipped   int            `yaml:"skipped"`
	Failed    int            `yaml:"failed"`
	Total     int            `yaml:"total"`
	Files     []types.Result `yaml:"files"`
}

// WriteReport serializes the batch result as YAML at path, creating parent
// directories as needed.
func WriteReport(path string, r BatchResult) error {
	rep := Report{
		Converted: r.Converted,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
		Total:     r.Total(),
		Files:     r.Entries,
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
