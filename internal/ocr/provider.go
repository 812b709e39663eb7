// Package ocr turns uploaded claim documents into raw text. A vision
// provider is tried first when one is configured, then direct PDF text
// extraction, then a canned demo fallback, so recognition always yields
// something for the extractor to work with.
package ocr

import (
	"context"
	"fmt"
	"strings"
)

// Mode labels which backend produced the text.
type Mode string

const (
	ModeGeminiVision Mode = "gemini_vision"
	ModeOpenAIVision Mode = "openai_vision"
	ModePDFText      Mode = "pdf_text_extraction"
	ModeDemoFallback Mode = "demo_fallback"
)

// Document is an uploaded claim document awaiting recognition.
type Document struct {
	Filename string
	Content  []byte
}

// IsPDF reports whether the document is a PDF, by extension.
func (d Document) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(d.Filename), ".pdf")
}

// MIMEType returns the content type sent to vision backends. Images
// default to JPEG; the exact subtype does not matter to the APIs.
func (d Document) MIMEType() string {
	if d.IsPDF() {
		return "application/pdf"
	}
	return "image/jpeg"
}

// Provider performs text recognition against one vision backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Recognize extracts text from the document.
	Recognize(ctx context.Context, doc Document) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// Config holds vision provider configuration.
type Config struct {
	// Provider name: "gemini", "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the selected provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds
}

// visionPrompt steers the vision model toward the fields the extractor
// looks for.
const visionPrompt = `Analyze this medical claim document and extract all visible text.
Pay special attention to:
- Patient information (name, age, ID)
- Diagnosis details
- Medications (names, dosages, quantities)
- Procedures performed
- Admission/discharge dates
- Total amounts and costs
- Doctor/facility information

Return the complete text content as clearly as possible.`

// NewProvider creates a vision provider based on configuration. An
// empty provider name disables vision OCR and returns nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "gemini":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown OCR provider: %s (supported: gemini, openai)", config.Provider)
	}
}

// modeFor maps a provider name to its result mode label.
func modeFor(name string) Mode {
	switch name {
	case "gemini":
		return ModeGeminiVision
	case "openai":
		return ModeOpenAIVision
	default:
		return ModeDemoFallback
	}
}
