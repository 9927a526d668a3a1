// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfpress/internal/history"
	"github.com/pdiddy/pdfpress/pkg/types"
)

// loadConfig builds the run configuration: built-in defaults, overlaid with
// the config file, overlaid with any flags explicitly set on cmd. File values
// that are out of range degrade to defaults with a warning; flag values out
// of range are a hard error.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	cfg := types.DefaultConfig()
	applyFileConfig(&cfg)

	f := cmd.Flags()
	if f.Changed("dpi") {
		cfg.Conversion.DPI, _ = f.GetInt("dpi")
	}
	if f.Changed("quality") {
		cfg.Conversion.Quality, _ = f.GetInt("quality")
	}
	if f.Changed("sample-dir") {
		cfg.Sample.Dir, _ = f.GetString("sample-dir")
	}
	if f.Changed("pattern") {
		cfg.Batch.Pattern, _ = f.GetString("pattern")
	}
	if f.Changed("recursive") {
		cfg.Batch.Recursive, _ = f.GetBool("recursive")
	}
	if f.Changed("skip-existing") {
		cfg.Batch.SkipExisting, _ = f.GetBool("skip-existing")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFileConfig(cfg *types.Config) {
	def := types.DefaultConfig()

	if v := viper.GetInt("conversion.dpi"); v != 0 {
		if v < types.MinDPI || v > types.MaxDPI {
			fmt.Fprintf(os.Stderr, "Warning: conversion.dpi %d out of range, using %d\n", v, def.Conversion.DPI)
		} else {
			cfg.Conversion.DPI = v
		}
	}
	if v := viper.GetInt("conversion.quality"); v != 0 {
		if v < types.MinQuality || v > types.MaxQuality {
			fmt.Fprintf(os.Stderr, "Warning: conversion.quality %d out of range, using %d\n", v, def.Conversion.Quality)
		} else {
			cfg.Conversion.Quality = v
		}
	}
	if v := viper.GetString("sample.dir"); v != "" {
		cfg.Sample.Dir = v
	}
	if v := viper.GetString("batch.pattern"); v != "" {
		cfg.Batch.Pattern = v
	}
	if viper.IsSet("batch.recursive") {
		cfg.Batch.Recursive = viper.GetBool("batch.recursive")
	}
	if viper.IsSet("batch.skip_existing") {
		cfg.Batch.SkipExisting = viper.GetBool("batch.skip_existing")
	}
	if viper.IsSet("output.optimize") {
		cfg.Output.Optimize = viper.GetBool("output.optimize")
	}
	if viper.IsSet("history.enabled") {
		cfg.History.Enabled = viper.GetBool("history.enabled")
	}
	if v := viper.GetString("history.dir"); v != "" {
		cfg.History.Dir = v
	}
}

// recordHistory appends results to the conversion ledger. Ledger problems are
// reported but never fail the conversion that produced the results.
func recordHistory(cfg types.Config, results ...types.Result) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: not recording history:", err)
		return
	}
	defer store.Close()

	ctx := context.Background()
	for _, r := range results {
		if err := store.Record(ctx, r); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: not recording history:", err)
			return
		}
	}
}
