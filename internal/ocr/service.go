package ocr

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/claimsight/claimsight/internal/cache"
)

// Result is the outcome of recognizing one document.
type Result struct {
	Text string `json:"text"`
	Mode Mode   `json:"mode"`
}

// Service runs the OCR cascade and caches results by content digest.
// The cascade never fails: a configured vision provider is tried first,
// then direct PDF text extraction, then the demo fallback.
type Service struct {
	provider Provider // nil when no vision backend is configured
	results  cache.Cache
	logger   zerolog.Logger
}

// NewService builds the OCR service from configuration. Pass a nil
// cache to disable result caching.
func NewService(config Config, results cache.Cache, logger zerolog.Logger) (*Service, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Service{
		provider: provider,
		results:  results,
		logger:   logger,
	}, nil
}

// Recognize returns the text for a document, reusing a cached result
// when the same bytes were seen before.
func (s *Service) Recognize(ctx context.Context, doc Document) (Result, error) {
	key := cache.ContentKey(doc.Content)

	if s.results != nil {
		if raw, found := s.results.Get(key); found {
			var cached Result
			if err := json.Unmarshal(raw, &cached); err == nil {
				s.logger.Debug().Str("filename", doc.Filename).Str("mode", string(cached.Mode)).Msg("ocr cache hit")
				return cached, nil
			}
		}
	}

	result := s.recognize(ctx, doc)

	if s.results != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.results.Set(key, raw, 0); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache ocr result")
			}
		}
	}

	s.logger.Info().Str("filename", doc.Filename).Str("mode", string(result.Mode)).Int("chars", len(result.Text)).Msg("ocr completed")
	return result, nil
}

// recognize runs the cascade: vision provider, then PDF text, then the
// demo fallback.
func (s *Service) recognize(ctx context.Context, doc Document) Result {
	if s.provider != nil {
		text, err := s.provider.Recognize(ctx, doc)
		if err == nil {
			return Result{Text: text, Mode: modeFor(s.provider.Name())}
		}
		s.logger.Warn().Err(err).Str("provider", s.provider.Name()).Msg("vision OCR failed, falling back")
	}

	if doc.IsPDF() {
		text, err := ExtractPDFText(doc.Content)
		if err == nil && text != "" {
			return Result{Text: text, Mode: ModePDFText}
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("PDF text extraction failed, using demo fallback")
		}
	}

	return Result{Text: FallbackText(), Mode: ModeDemoFallback}
}
