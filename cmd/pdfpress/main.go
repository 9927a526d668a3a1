// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfpress CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdfpress CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfpress",
	Short: "Convert PDFs into image-based PDFs",
	Long: `pdfpress rasterizes every page of a PDF at a configurable DPI, encodes
the pages as JPEG at a configurable quality, and reassembles them into a new
PDF whose pages carry nothing but the image. The result has no extractable
text or vector data, which flattens the content and often shrinks the file.

Use convert for a single file, batch for a directory tree, and the --sample
flag on either to preview one page before committing to a full run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfpress.yaml or ~/.config/pdfpress/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfpress")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfpress"))
		}
	}

	viper.SetEnvPrefix("PDFPRESS")
	viper.AutomaticEnv()

	// A missing or malformed config file never fails the run; the built-in
	// defaults apply instead.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Warning: ignoring config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
