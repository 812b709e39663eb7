package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimsight/claimsight/internal/pipeline"
	"github.com/claimsight/claimsight/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchNoCache bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract claims from a directory of documents in parallel",
	Long: `Batch processes a directory of claim documents concurrently:
- List supported documents (jpg, jpeg, png, pdf, bmp, tiff, tif)
- Run OCR and extraction in parallel with configurable worker count
- Write one JSON result per document to the output directory

Example:
  claimsight batch ./claims
  claimsight batch ./claims --concurrency 10 --output-dir ./results
  claimsight batch ./claims --ocr-provider gemini --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimsight-results", "output directory for extracted records")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the OCR result cache")

	// OCR flags shared with serve
	batchCmd.Flags().StringVar(&ocrProvider, "ocr-provider", "", "vision OCR provider (gemini, openai; empty for demo fallback)")
	batchCmd.Flags().StringVar(&ocrModel, "ocr-model", "", "vision model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ocrProvider != "" {
		cfg.OCR.Provider = ocrProvider
	}
	if ocrModel != "" {
		cfg.OCR.Model = ocrModel
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}

	switch cfg.OCR.Provider {
	case "gemini":
		if cfg.OCR.APIKey == "" {
			cfg.OCR.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	case "openai":
		if cfg.OCR.APIKey == "" {
			cfg.OCR.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	logger := newLogger(cfg.Log)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Claimsight Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.OCR.Provider != "" {
		fmt.Fprintf(os.Stderr, "  OCR:          %s\n", cfg.OCR.Provider)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	paths, err := worker.ListDocuments(dir)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d documents with %d workers...\n", len(paths), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessPaths(ctx, paths)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		name := filepath.Base(result.Path)
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, result.Error)
			continue
		}

		outPath := filepath.Join(outputDir, jsonName(name))
		if err := pipeline.WriteResult(result.Result, outPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write result: %v\n", name, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (mode: %s)\n", name, result.Result.Mode)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}

// jsonName swaps a document filename's extension for .json.
func jsonName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".json"
}
