package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from an assembled prompt. Extraction is
// idempotent given identical draft and input, so the prompt hash fully
// identifies the result.
func Key(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "revisor:v1:" + hex.EncodeToString(hash[:])
}
