// Package cache caches remote service responses so re-checking the same
// comments does not re-pay extraction or analysis calls. Pipeline state
// (discovery, affordances) is never cached or persisted.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from a request kind and its canonical payload.
// Hashing the whole payload keys the entry by content: same claim, same
// keywords, same context, same entry.
func Key(kind string, payload []byte) string {
	hash := sha256.Sum256(payload)
	return "factcheck:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
