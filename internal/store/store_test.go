package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/claimsight/claimsight/internal/model"
)

func sampleClaim() model.ClaimRecord {
	age := 34
	return model.ClaimRecord{
		Patient:     model.Patient{Name: "Jane Doe", Age: &age},
		Diagnoses:   []string{"Malaria"},
		Medications: []model.Medication{{Name: "Paracetamol", Dosage: "500mg", Quantity: "10 tablets"}},
		Procedures:  []string{"Malaria Test"},
		TotalAmount: "₦15,000.00",
	}
}

func TestStore_PutAndGet(t *testing.T) {
	s := New()

	stored := s.Put("doc-1", sampleClaim())
	if stored.Metadata.DocumentID != "doc-1" {
		t.Errorf("expected document id doc-1, got %q", stored.Metadata.DocumentID)
	}
	if stored.Metadata.AccessCount != 0 {
		t.Errorf("expected access count 0 on put, got %d", stored.Metadata.AccessCount)
	}
	if stored.Metadata.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}

	got, err := s.Get("doc-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Metadata.AccessCount != 1 {
		t.Errorf("expected access count 1 after first get, got %d", got.Metadata.AccessCount)
	}
	if got.Claim.Patient.Name != "Jane Doe" {
		t.Errorf("unexpected claim payload: %+v", got.Claim)
	}

	got, _ = s.Get("doc-1")
	if got.Metadata.AccessCount != 2 {
		t.Errorf("expected access count 2 after second get, got %d", got.Metadata.AccessCount)
	}
	if !got.Metadata.LastAccessed.After(stored.Metadata.CreatedAt) && !got.Metadata.LastAccessed.Equal(stored.Metadata.CreatedAt) {
		t.Error("expected last_accessed to move forward")
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := New()

	_, err := s.Get("missing")
	if err == nil {
		t.Fatal("expected error for missing document")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.ID != "missing" {
		t.Errorf("expected offending id in error, got %q", notFound.ID)
	}
}

func TestStore_DeleteAndExists(t *testing.T) {
	s := New()
	s.Put("doc-1", sampleClaim())

	if !s.Exists("doc-1") {
		t.Error("expected doc-1 to exist")
	}
	if !s.Delete("doc-1") {
		t.Error("expected delete to report true")
	}
	if s.Exists("doc-1") {
		t.Error("expected doc-1 to be gone")
	}
	if s.Delete("doc-1") {
		t.Error("expected second delete to report false")
	}
}

func TestStore_IDsAndClear(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		s.Put(fmt.Sprintf("doc-%d", i), sampleClaim())
	}

	if ids := s.IDs(); len(ids) != 3 {
		t.Errorf("expected 3 ids, got %v", ids)
	}

	if cleared := s.Clear(); cleared != 3 {
		t.Errorf("expected clear to report 3, got %d", cleared)
	}
	if ids := s.IDs(); len(ids) != 0 {
		t.Errorf("expected empty store, got %v", ids)
	}
	if cleared := s.Clear(); cleared != 0 {
		t.Errorf("expected clear on empty store to report 0, got %d", cleared)
	}
}

func TestStore_Stats(t *testing.T) {
	s := New()

	stats := s.Stats()
	if stats.TotalDocuments != 0 || stats.OldestDocument != nil || stats.AvgAccessCount != 0 {
		t.Errorf("expected zero stats on empty store, got %+v", stats)
	}

	s.Put("doc-1", sampleClaim())
	s.Put("doc-2", sampleClaim())
	s.Get("doc-1")
	s.Get("doc-1")

	stats = s.Stats()
	if stats.TotalDocuments != 2 {
		t.Errorf("expected 2 documents, got %d", stats.TotalDocuments)
	}
	if stats.TotalAccessCount != 2 {
		t.Errorf("expected total access count 2, got %d", stats.TotalAccessCount)
	}
	if stats.AvgAccessCount != 1 {
		t.Errorf("expected avg access count 1, got %f", stats.AvgAccessCount)
	}
	if stats.OldestDocument == nil || stats.NewestDocument == nil {
		t.Fatal("expected oldest/newest stamps")
	}
	if stats.OldestDocument.After(*stats.NewestDocument) {
		t.Error("expected oldest <= newest")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Put(fmt.Sprintf("doc-%d", n), sampleClaim())
		}(i)
	}
	wg.Wait()

	if len(s.IDs()) != workers {
		t.Fatalf("expected %d documents, got %d", workers, len(s.IDs()))
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := s.Get(fmt.Sprintf("doc-%d", n)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	stats := s.Stats()
	if stats.TotalAccessCount != workers {
		t.Errorf("expected total access count %d, got %d", workers, stats.TotalAccessCount)
	}
}
