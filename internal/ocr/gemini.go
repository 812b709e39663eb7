package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface using the Gemini
// vision API with inline document bytes.
type GeminiProvider struct {
	config Config
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	return &GeminiProvider{config: config}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable reports whether the provider is configured. The Gemini
// client is created per call, so there is no cheap liveness probe.
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	return p.config.APIKey != ""
}

// Recognize sends the document inline with the vision prompt and
// returns the extracted text.
func (p *GeminiProvider) Recognize(ctx context.Context, doc Document) (string, error) {
	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create Gemini client: %w", err)
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: visionPrompt},
				{
					InlineData: &genai.Blob{
						Data:     doc.Content,
						MIMEType: doc.MIMEType(),
					},
				},
			},
		},
	}

	model := p.config.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Gemini GenerateContent failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("no text extracted from Gemini vision API")
	}
	return text, nil
}
