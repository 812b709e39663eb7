// Package pipeline orchestrates the OCR and extraction stages for one
// claim document.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/claimsight/claimsight/internal/cache"
	"github.com/claimsight/claimsight/internal/extract"
	"github.com/claimsight/claimsight/internal/metrics"
	"github.com/claimsight/claimsight/internal/model"
	"github.com/claimsight/claimsight/internal/ocr"
	"github.com/claimsight/claimsight/internal/validate"
)

// Pipeline runs OCR and claim extraction end to end.
type Pipeline struct {
	ocrService *ocr.Service
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// New creates a pipeline from configuration: the vision provider comes
// from cfg.OCR and the OCR result cache from cfg.Cache.
func New(cfg *model.Config, logger zerolog.Logger) (*Pipeline, error) {
	var results cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "claimsight-cache")
		}
		results = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	ocrService, err := ocr.NewService(ocr.Config{
		Provider: cfg.OCR.Provider,
		Model:    cfg.OCR.Model,
		APIKey:   cfg.OCR.APIKey,
		BaseURL:  cfg.OCR.BaseURL,
		Timeout:  cfg.OCR.Timeout,
	}, results, logger)
	if err != nil {
		return nil, fmt.Errorf("create OCR service: %w", err)
	}

	return &Pipeline{
		ocrService: ocrService,
		logger:     logger,
	}, nil
}

// NewWithService creates a pipeline around an existing OCR service.
func NewWithService(ocrService *ocr.Service, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		ocrService: ocrService,
		logger:     logger,
	}
}

// WithMetrics attaches Prometheus instrumentation to the OCR and
// extraction stages.
func (p *Pipeline) WithMetrics(m *metrics.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// Result is the outcome of processing one document.
type Result struct {
	Claim model.ClaimRecord `json:"claim"`
	Mode  ocr.Mode          `json:"ocr_mode"`
}

// Process validates, recognizes, and extracts one uploaded document.
func (p *Pipeline) Process(ctx context.Context, doc ocr.Document) (*Result, error) {
	if err := validate.Filename(doc.Filename); err != nil {
		return nil, err
	}
	if err := validate.Content(doc.Filename, doc.Content); err != nil {
		return nil, err
	}

	ocrStart := time.Now()
	ocrResult, err := p.ocrService.Recognize(ctx, doc)
	if p.metrics != nil {
		p.metrics.OCRDuration.Observe(time.Since(ocrStart).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	extractStart := time.Now()
	claim, err := extract.ExtractClaimData(ocrResult.Text)
	if p.metrics != nil {
		p.metrics.ExtractionDuration.Observe(time.Since(extractStart).Seconds())
	}
	if err != nil {
		return nil, err
	}

	return &Result{Claim: claim, Mode: ocrResult.Mode}, nil
}

// ProcessFile runs the pipeline over a document on disk.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.Process(ctx, ocr.Document{Filename: filepath.Base(path), Content: content})
}

// WriteResult renders a result as indented JSON next to other batch
// outputs.
func WriteResult(result *Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
