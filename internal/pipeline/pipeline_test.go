package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/claimsight/claimsight/internal/model"
	"github.com/claimsight/claimsight/internal/ocr"
	"github.com/claimsight/claimsight/internal/validate"
)

func newDemoPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	p, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return p
}

func jpegDocument() ocr.Document {
	return ocr.Document{
		Filename: "claim.jpg",
		Content:  []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03},
	}
}

func TestPipeline_ProcessDemoDocument(t *testing.T) {
	p := newDemoPipeline(t)

	result, err := p.Process(context.Background(), jpegDocument())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Mode != ocr.ModeDemoFallback {
		t.Errorf("expected demo_fallback mode, got %s", result.Mode)
	}
	if result.Claim.Patient.Name != "Jane Doe" {
		t.Errorf("expected demo patient, got %q", result.Claim.Patient.Name)
	}
	if len(result.Claim.Medications) == 0 {
		t.Error("expected medications in demo claim")
	}
}

func TestPipeline_RejectsBadUploads(t *testing.T) {
	p := newDemoPipeline(t)

	_, err := p.Process(context.Background(), ocr.Document{Filename: "claim.txt", Content: []byte("x")})
	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for bad extension, got %v", err)
	}

	_, err = p.Process(context.Background(), ocr.Document{Filename: "claim.jpg", Content: []byte("not an image")})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for bad content, got %v", err)
	}
}

func TestPipeline_ProcessFile(t *testing.T) {
	p := newDemoPipeline(t)

	path := filepath.Join(t.TempDir(), "claim.jpg")
	if err := writeTestFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01}); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Mode != ocr.ModeDemoFallback {
		t.Errorf("expected demo_fallback mode, got %s", result.Mode)
	}

	if _, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteResult(t *testing.T) {
	p := newDemoPipeline(t)
	result, err := p.Process(context.Background(), jpegDocument())
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteResult(result, path); err != nil {
		t.Fatalf("write result: %v", err)
	}
}

func writeTestFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0o644)
}
