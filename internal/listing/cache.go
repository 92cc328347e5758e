package listing

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rentradar/rentradar/internal/domain"
)

// Cache is the injectable TTL cache for search results. It is a dependency
// of the search service, never a global; tests swap in their own.
type Cache interface {
	Get(key string) ([]domain.Property, bool)
	Set(key string, props []domain.Property)
	Keys() []string
	Clear()
}

type memoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates an in-process TTL cache for search results.
// Expired entries are purged at twice the TTL.
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{c: gocache.New(ttl, 2*ttl)}
}

func (m *memoryCache) Get(key string) ([]domain.Property, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	props, ok := v.([]domain.Property)
	return props, ok
}

func (m *memoryCache) Set(key string, props []domain.Property) {
	m.c.Set(key, props, gocache.DefaultExpiration)
}

func (m *memoryCache) Keys() []string {
	items := m.c.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys
}

func (m *memoryCache) Clear() {
	m.c.Flush()
}
