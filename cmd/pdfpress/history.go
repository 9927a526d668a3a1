// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfpress/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists conversions recorded in the local ledger, newest first.
Recording can be disabled with history.enabled: false in the config file.`,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded conversion runs",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no conversions recorded")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-9s  %s", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Status, e.InputPath)
		switch {
		case e.Error != "":
			line += fmt.Sprintf("  (%s)", e.Error)
		case e.Sample():
			line += fmt.Sprintf("  -> %s (page %d of %d)", e.OutputPath, e.SamplePage, e.Pages)
		default:
			line += fmt.Sprintf("  -> %s (%d pages)", e.OutputPath, e.Pages)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(context.Background()); err != nil {
		return err
	}
	fmt.Println("history cleared")
	return nil
}
