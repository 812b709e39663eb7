package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/claimsight/claimsight/internal/metrics"
	"github.com/claimsight/claimsight/internal/model"
	"github.com/claimsight/claimsight/internal/ocr"
	"github.com/claimsight/claimsight/internal/pipeline"
	"github.com/claimsight/claimsight/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := model.DefaultConfig()
	cfg.Server.AskDelay = 0
	cfg.Server.RateLimitRPS = 0 // disable for tests
	cfg.Cache.Enabled = false

	logger := zerolog.Nop()
	m := metrics.New()
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		t.Fatalf("create pipeline: %v", err)
	}
	p.WithMetrics(m)

	return New(cfg, p, store.New(), m, logger)
}

// jpegUpload builds a multipart body carrying a minimal JPEG.
func jpegUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "claim.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func doRequest(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "claimsight") {
		t.Errorf("expected service banner, got %s", rec.Body.String())
	}
}

func TestExtract_DemoFallback(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := jpegUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set(echoContentType, contentType)

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.DocumentID == "" {
		t.Error("expected a document id")
	}
	if resp.OCRMode != ocr.ModeDemoFallback {
		t.Errorf("expected demo fallback mode, got %q", resp.OCRMode)
	}
	if resp.Patient.Name != "Jane Doe" {
		t.Errorf("expected patient Jane Doe, got %q", resp.Patient.Name)
	}
	if resp.Metadata.DocumentID != resp.DocumentID {
		t.Errorf("metadata id %q does not match %q", resp.Metadata.DocumentID, resp.DocumentID)
	}

	// The extracted document must be retrievable.
	if !srv.store.Exists(resp.DocumentID) {
		t.Error("expected document to be stored")
	}
}

func TestExtract_NoFile(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(""))
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestExtract_BadExtension(t *testing.T) {
	srv := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "claim.txt")
	part.Write([]byte("plain text"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set(echoContentType, writer.FormDataContentType())

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExtract_BadSignature(t *testing.T) {
	srv := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "claim.jpg")
	part.Write([]byte("not an image"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set(echoContentType, writer.FormDataContentType())

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAsk_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	// Upload first to get a document id.
	body, contentType := jpegUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set(echoContentType, contentType)
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("extract failed: %d %s", rec.Code, rec.Body.String())
	}

	var extractResp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &extractResp); err != nil {
		t.Fatalf("decode extract response: %v", err)
	}

	askBody, _ := json.Marshal(AskRequest{
		DocumentID: extractResp.DocumentID,
		Question:   "anything at all",
	})
	askReq := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(askBody))
	askReq.Header.Set(echoContentType, "application/json")

	askRec := doRequest(t, srv, askReq)
	if askRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", askRec.Code, askRec.Body.String())
	}

	var askResp AskResponse
	if err := json.Unmarshal(askRec.Body.Bytes(), &askResp); err != nil {
		t.Fatalf("decode ask response: %v", err)
	}

	// The demo document yields three medications, all reasoned about.
	if !strings.Contains(askResp.Answer, "Paracetamol") {
		t.Errorf("expected paracetamol in answer, got %q", askResp.Answer)
	}
	if !strings.Contains(askResp.Answer, "antimalarial") {
		t.Errorf("expected antimalarial reasoning, got %q", askResp.Answer)
	}
}

func TestAsk_UnknownDocument(t *testing.T) {
	srv := newTestServer(t)

	askBody, _ := json.Marshal(AskRequest{DocumentID: "missing-id", Question: "why?"})
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(askBody))
	req.Header.Set(echoContentType, "application/json")

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "missing-id") {
		t.Errorf("expected offending id in error, got %s", rec.Body.String())
	}
}

func TestAsk_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body AskRequest
	}{
		{"empty document id", AskRequest{Question: "why?"}},
		{"empty question", AskRequest{DocumentID: "some-id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(raw))
			req.Header.Set(echoContentType, "application/json")

			rec := doRequest(t, srv, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestStorageHealth(t *testing.T) {
	srv := newTestServer(t)

	srv.store.Put("doc-1", model.ClaimRecord{Diagnoses: []string{"Malaria"}})

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/health/storage", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats model.StoreStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalDocuments != 1 {
		t.Errorf("expected 1 document, got %d", stats.TotalDocuments)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// An upload drives the request and business metrics.
	body, contentType := jpegUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set(echoContentType, contentType)
	if rec := doRequest(t, srv, req); rec.Code != http.StatusOK {
		t.Fatalf("extract failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	exposition := rec.Body.String()
	for _, want := range []string{
		"documents_processed_total 1",
		"documents_in_storage 1",
		`requests_total{endpoint="extract",method="POST"} 1`,
		"ocr_processing_duration_seconds",
		"extraction_processing_duration_seconds",
	} {
		if !strings.Contains(exposition, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header on response")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "client-id")
	rec = doRequest(t, srv, req)
	if got := rec.Header().Get("X-Request-Id"); got != "client-id" {
		t.Errorf("expected client-supplied id to be echoed, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Server.AskDelay = 0
	cfg.Server.RateLimitRPS = 1
	cfg.Server.RateLimitBurst = 2
	cfg.Cache.Enabled = false

	logger := zerolog.Nop()
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		t.Fatalf("create pipeline: %v", err)
	}
	srv := New(cfg, p, store.New(), metrics.New(), logger)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", rec.Code)
	}
}

const echoContentType = "Content-Type"
