// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration and result structures shared between
// the CLI and the conversion stages.
package types

import "fmt"

// Rasterization bounds accepted by the rendering and encoding calls.
const (
	MinDPI     = 50
	MaxDPI     = 600
	MinQuality = 1
	MaxQuality = 100
)

// ConversionConfig holds the rasterization settings applied to every page.
type ConversionConfig struct {
	// DPI is the rendering resolution. Higher DPI produces clearer pages
	// but larger files (default 100).
	DPI int `json:"dpi" yaml:"dpi"`

	// Quality is the JPEG compression quality (1-100) for page images
	// (default 90).
	Quality int `json:"quality" yaml:"quality"`
}

// SampleConfig holds settings for sample mode, which converts a single page
// for a quick quality preview.
type SampleConfig struct {
	// Dir is the directory sample output files are written to (default "examples").
	Dir string `json:"dir" yaml:"dir"`
}

// BatchConfig holds settings for directory-tree conversion.
type BatchConfig struct {
	// Pattern is the filename glob matched against discovered files (default "*.pdf").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Recursive controls whether subdirectories are searched.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// SkipExisting skips inputs whose mirrored output file already exists.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`
}

// OutputConfig holds settings applied to every written PDF.
type OutputConfig struct {
	// Optimize runs a pdfcpu optimization pass over each output file,
	// deduplicating resources and compressing streams (default true).
	Optimize bool `json:"optimize" yaml:"optimize"`
}

// HistoryConfig holds settings for the conversion history ledger.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory containing the ledger database (default ".pdfpress").
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all settings for a run. It is loaded once at startup and
// passed explicitly to the conversion calls.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Sample     SampleConfig     `json:"sample" yaml:"sample"`
	Batch      BatchConfig      `json:"batch" yaml:"batch"`
	Output     OutputConfig     `json:"output" yaml:"output"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}

// DefaultConfig returns the built-in defaults used when the config file is
// absent or leaves keys unset.
func DefaultConfig() Config {
	return Config{
		Conversion: ConversionConfig{DPI: 100, Quality: 90},
		Sample:     SampleConfig{Dir: "examples"},
		Batch:      BatchConfig{Pattern: "*.pdf"},
		Output:     OutputConfig{Optimize: true},
		History:    HistoryConfig{Enabled: true, Dir: ".pdfpress"},
	}
}

// Validate checks that the rasterization settings are within the bounds the
// rendering and encoding calls accept.
func (c Config) Validate() error {
	if c.Conversion.DPI < MinDPI || c.Conversion.DPI > MaxDPI {
		return fmt.Errorf("dpi must be between %d and %d, got %d", MinDPI, MaxDPI, c.Conversion.DPI)
	}
	if c.Conversion.Quality < MinQuality || c.Conversion.Quality > MaxQuality {
		return fmt.Errorf("quality must be between %d and %d, got %d", MinQuality, MaxQuality, c.Conversion.Quality)
	}
	if c.Batch.Pattern == "" {
		return fmt.Errorf("batch pattern must not be empty")
	}
	return nil
}
