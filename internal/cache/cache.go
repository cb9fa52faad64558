package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/akosenkov/lapsus/internal/model"
)

// Cache is the read-through store for fetched article extracts. A summary
// fetched once should serve every replay of that puzzle day without
// touching the network again.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for an article title in a wiki language.
// Titles are case-folded and trimmed first so "Paris" and "paris " share
// an entry. The version prefix invalidates every entry when the cached
// payload format changes.
func Key(lang, title string) string {
	normalized := lang + ":" + strings.ToLower(strings.TrimSpace(title))
	hash := sha256.Sum256([]byte(normalized))
	return "lapsus:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the configured cache, nil when caching is disabled.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
