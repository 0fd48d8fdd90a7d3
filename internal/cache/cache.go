// Package cache provides the layered (memory + disk) byte cache backing the
// session snapshot store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SessionKey derives a stable cache key for a session's score history.
func SessionKey(session string) string {
	hash := sha256.Sum256([]byte(session))
	return "asearch:v1:" + hex.EncodeToString(hash[:])
}
