package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfpress/internal/convert"
	"github.com/pdiddy/pdfpress/internal/raster"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir> [output_dir]",
	Short: "Convert every PDF under a directory",
	Long: `Batch discovers PDF files under the input directory (the whole tree with
--recursive) and converts each one, mirroring the relative directory
structure under the output directory. One file failing never aborts the run;
failures are recorded and the batch continues. The command exits nonzero if
any file failed.

With --sample one page per discovered file is converted into the sample
directory instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBatch,
}

func init() {
	addConversionFlags(batchCmd)
	batchCmd.Flags().BoolP("recursive", "r", false, "process subdirectories recursively")
	batchCmd.Flags().String("pattern", "*.pdf", "filename pattern to match")
	batchCmd.Flags().Bool("skip-existing", false, "skip files whose output already exists")
	batchCmd.Flags().String("report", "", "write a YAML summary of the run to this file")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetBool("sample")
	samplePage, _ := cmd.Flags().GetInt("sample-page")
	reportPath, _ := cmd.Flags().GetString("report")
	if samplePage < 0 {
		return fmt.Errorf("sample page must be >= 1")
	}

	if !sample && len(args) < 2 {
		return fmt.Errorf("output directory is required unless --sample is set")
	}

	job := convert.BatchJob{
		InputDir:   args[0],
		Sample:     sample,
		SamplePage: samplePage,
	}
	if len(args) == 2 {
		job.OutputDir = args[1]
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result, err := convert.RunBatch(raster.FitzOpener{}, job, rng, cfg, os.Stdout)
	if err != nil {
		return err
	}

	recordHistory(cfg, result.Entries...)

	if reportPath != "" {
		if err := convert.WriteReport(reportPath, result); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "report written to", reportPath)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
