package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claimsight/claimsight/internal/pipeline"
)

// Processor runs the OCR/extraction pipeline over one document file.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*pipeline.Result, error)
}

// ExtractJob processes one claim document file.
type ExtractJob struct {
	Path      string
	Processor Processor
}

// Execute runs the job.
func (j *ExtractJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ProcessFile(ctx, j.Path)
	return &ExtractResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// ExtractResult is the outcome of processing one file.
type ExtractResult struct {
	Path   string
	Result *pipeline.Result
	Error  error
}

// GetError returns the job error, if any.
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor processes a directory of claim documents concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given files concurrently. Cancelling ctx
// cancels in-flight jobs and abandons queued ones.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ExtractJob{
			Path:      path,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	extractResults := make([]*ExtractResult, len(results))
	for i, result := range results {
		extractResults[i] = result.(*ExtractResult)
	}
	return extractResults
}

// ProcessDir lists supported documents in a directory and processes
// them concurrently.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ExtractResult, error) {
	paths, err := ListDocuments(dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ListDocuments returns the supported claim documents in dir, sorted
// by name.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".pdf", ".bmp", ".tiff", ".tif":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
