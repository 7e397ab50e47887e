package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a process-local key/value cache with per-entry expiry. It is a
// best-effort layer only; expired entries are evicted lazily on the next read
// and nothing here is ever a source of truth.
type Store struct {
	c *gocache.Cache
}

func New() *Store {
	return &Store{c: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

// Set stores value with absolute expiry now + ttl. A non-positive ttl means
// the entry never expires.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		s.c.Set(key, value, gocache.NoExpiration)
		return
	}
	s.c.Set(key, value, ttl)
}

// Get returns the value if the entry exists and has not expired.
func (s *Store) Get(key string) (interface{}, bool) {
	return s.c.Get(key)
}

// Delete removes an entry if present.
func (s *Store) Delete(key string) {
	s.c.Delete(key)
}

// Flush drops every entry.
func (s *Store) Flush() {
	s.c.Flush()
}

// Key builds a namespaced cache key from a prefix and parameters.
func Key(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
