// Package cache caches OCR results so re-uploaded documents skip the
// vision backend. Keys are derived from the uploaded bytes, values are
// serialized OCR results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by the memory, disk, and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ContentKey derives a cache key from raw document bytes.
func ContentKey(content []byte) string {
	digest := sha256.Sum256(content)
	return "claimsight:ocr:v1:" + hex.EncodeToString(digest[:])
}
