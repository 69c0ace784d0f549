package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"conferencecentral/internal/domain"
)

type memoryCache struct {
	c *gocache.Cache
}

// NewMemory returns an in-process cache. Entries never expire; aggregates
// overwrite or delete their own keys on recompute.
func NewMemory() domain.AggregateCache {
	return &memoryCache{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, nil
	}
	return s, true, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string) error {
	m.c.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
