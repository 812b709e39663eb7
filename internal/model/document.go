package model

import "time"

// StoredDocument is a claim record at rest in the document store,
// together with its access metadata.
type StoredDocument struct {
	Claim    ClaimRecord      `json:"claim"`
	Metadata DocumentMetadata `json:"metadata"`
}

// DocumentMetadata tracks the lifecycle of a stored document.
type DocumentMetadata struct {
	DocumentID   string    `json:"document_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
	AccessCount  int       `json:"access_count"`
}

// StoreStats is an aggregate snapshot of the document store, served by
// the storage health endpoint.
type StoreStats struct {
	TotalDocuments   int        `json:"total_documents"`
	OldestDocument   *time.Time `json:"oldest_document,omitempty"`
	NewestDocument   *time.Time `json:"newest_document,omitempty"`
	TotalAccessCount int        `json:"total_access_count"`
	AvgAccessCount   float64    `json:"avg_access_count"`
}
