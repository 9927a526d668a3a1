// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Status is the outcome of one file's conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result records the outcome of converting one PDF.
type Result struct {
	// InputPath is the source PDF.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the written image PDF. Empty when the conversion failed
	// before an output location was determined.
	OutputPath string `json:"output_path" yaml:"output_path"`

	Status Status `json:"status" yaml:"status"`

	// Pages is the source page count. In sample mode this is still the full
	// count; the output always has exactly one page.
	Pages int `json:"pages" yaml:"pages"`

	// SamplePage is the 1-based page converted in sample mode, 0 otherwise.
	SamplePage int `json:"sample_page,omitempty" yaml:"sample_page,omitempty"`

	// InputBytes and OutputBytes are the file sizes before and after.
	InputBytes  int64 `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int64 `json:"output_bytes" yaml:"output_bytes"`

	Duration time.Duration `json:"duration" yaml:"duration"`

	// Error holds the failure reason when Status is StatusFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Sample reports whether this result came from a sample conversion.
func (r Result) Sample() bool {
	return r.SamplePage > 0
}
