package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on a shared registry.
	a := New()
	b := New()

	a.DocumentsProcessed.Inc()
	if got := testutil.ToFloat64(a.DocumentsProcessed); got != 1 {
		t.Errorf("expected 1 processed document, got %v", got)
	}
	if got := testutil.ToFloat64(b.DocumentsProcessed); got != 0 {
		t.Errorf("expected fresh counter at 0, got %v", got)
	}
}

func TestCounters(t *testing.T) {
	m := New()

	m.Requests.WithLabelValues("POST", "extract").Inc()
	m.Requests.WithLabelValues("POST", "extract").Inc()
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("POST", "extract")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}

	m.Errors.WithLabelValues("POST", "ask", "*echo.HTTPError").Inc()
	if got := testutil.ToFloat64(m.Errors.WithLabelValues("POST", "ask", "*echo.HTTPError")); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}

	m.DocumentsInStorage.Set(3)
	if got := testutil.ToFloat64(m.DocumentsInStorage); got != 3 {
		t.Errorf("expected 3 documents in storage, got %v", got)
	}
}

func TestHistogramsObserve(t *testing.T) {
	m := New()

	m.OCRDuration.Observe(0.25)
	m.ExtractionDuration.Observe(0.01)

	if got := testutil.CollectAndCount(m.OCRDuration); got != 1 {
		t.Errorf("expected 1 OCR histogram series, got %d", got)
	}
	if got := testutil.CollectAndCount(m.ExtractionDuration); got != 1 {
		t.Errorf("expected 1 extraction histogram series, got %d", got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.DocumentsProcessed.Inc()
	m.DocumentsInStorage.Set(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"documents_processed_total 1",
		"documents_in_storage 1",
		"ocr_processing_duration_seconds",
		"extraction_processing_duration_seconds",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected exposition to contain %q, got:\n%s", want, body)
		}
	}
}
