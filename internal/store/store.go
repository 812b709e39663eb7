// Package store provides the thread-safe in-memory document store for
// extracted claim records.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/claimsight/claimsight/internal/model"
)

// NotFoundError reports a lookup for a document id that is not in the
// store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document with ID %q not found", e.ID)
}

// Store holds extracted claim records in memory, keyed by document id.
// All operations are safe for concurrent use; a single mutex guards the
// map and every metadata update.
type Store struct {
	mu        sync.Mutex
	documents map[string]*model.StoredDocument
}

// New creates an empty store.
func New() *Store {
	return &Store{
		documents: make(map[string]*model.StoredDocument),
	}
}

// Put saves a claim record under the given id and returns the stored
// document with fresh metadata. An existing document under the same id
// is replaced.
func (s *Store) Put(id string, claim model.ClaimRecord) model.StoredDocument {
	now := time.Now().UTC()
	doc := &model.StoredDocument{
		Claim: claim,
		Metadata: model.DocumentMetadata{
			DocumentID:   id,
			CreatedAt:    now,
			LastAccessed: now,
			AccessCount:  0,
		},
	}

	s.mu.Lock()
	s.documents[id] = doc
	s.mu.Unlock()

	return *doc
}

// Get returns the document for id, bumping its access count and
// last-accessed stamp atomically under the store lock.
func (s *Store) Get(id string) (model.StoredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return model.StoredDocument{}, &NotFoundError{ID: id}
	}

	doc.Metadata.AccessCount++
	doc.Metadata.LastAccessed = time.Now().UTC()

	return *doc, nil
}

// Exists reports whether a document with id is stored, without touching
// its access metadata.
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.documents[id]
	return ok
}

// Delete removes the document for id and reports whether it was
// present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return false
	}
	delete(s.documents, id)
	return true
}

// IDs returns the ids of every stored document.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.documents))
	for id := range s.documents {
		ids = append(ids, id)
	}
	return ids
}

// Clear removes every document and returns how many were dropped.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.documents)
	s.documents = make(map[string]*model.StoredDocument)
	return count
}

// Stats returns an aggregate snapshot of the store. All fields are
// zero-valued when the store is empty.
func (s *Store) Stats() model.StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.StoreStats{
		TotalDocuments: len(s.documents),
	}
	if stats.TotalDocuments == 0 {
		return stats
	}

	var oldest, newest time.Time
	for _, doc := range s.documents {
		created := doc.Metadata.CreatedAt
		if oldest.IsZero() || created.Before(oldest) {
			oldest = created
		}
		if newest.IsZero() || created.After(newest) {
			newest = created
		}
		stats.TotalAccessCount += doc.Metadata.AccessCount
	}

	stats.OldestDocument = &oldest
	stats.NewestDocument = &newest
	stats.AvgAccessCount = float64(stats.TotalAccessCount) / float64(stats.TotalDocuments)
	return stats
}
