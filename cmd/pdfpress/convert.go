package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfpress/internal/convert"
	"github.com/pdiddy/pdfpress/internal/raster"
	"github.com/pdiddy/pdfpress/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf> [output.pdf]",
	Short: "Convert one PDF into an image-based PDF",
	Long: `Convert rasterizes every page of the input at the configured DPI and
writes a new PDF whose pages are pure JPEG images. With --sample only one
page is converted, by default a randomly chosen one, into the sample
directory for a quick quality preview.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	addConversionFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// addConversionFlags registers the flags shared by convert and batch.
func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("dpi", 100, "rendering DPI, 50-600 (higher is clearer but larger)")
	cmd.Flags().Int("quality", 90, "JPEG compression quality, 1-100")
	cmd.Flags().Bool("sample", false, "convert a single page to preview the output")
	cmd.Flags().Int("sample-page", 0, "1-based page to sample (default: random)")
	cmd.Flags().String("sample-dir", "examples", "directory for sample output files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetBool("sample")
	samplePage, _ := cmd.Flags().GetInt("sample-page")
	if samplePage < 0 {
		return fmt.Errorf("sample page must be >= 1")
	}

	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}
	if !sample && output == "" {
		return fmt.Errorf("output path is required unless --sample is set")
	}

	opener := raster.FitzOpener{}
	var res types.Result
	if sample {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		res, err = convert.SampleConvert(opener, input, output, samplePage, rng, cfg, os.Stdout)
	} else {
		res, err = convert.Convert(opener, input, output, cfg, os.Stdout)
	}

	recordHistory(cfg, res)
	if err != nil {
		return err
	}
	printResult(os.Stdout, res)
	return nil
}

// printResult summarizes a successful single-file conversion.
func printResult(w io.Writer, res types.Result) {
	pages := res.Pages
	if res.Sample() {
		pages = 1
	}
	fmt.Fprintf(w, "\nwrote %s (%d page(s), %.2f MB -> %.2f MB, %.1fs)\n",
		res.OutputPath, pages,
		float64(res.InputBytes)/(1024*1024), float64(res.OutputBytes)/(1024*1024),
		res.Duration.Seconds())
	if res.Sample() {
		fmt.Fprintf(w, "review the sample in %s before a full conversion\n", filepath.Dir(res.OutputPath))
	}
}
