package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/samber/mo"
)

// MemoryStore keeps entries in process. It backs tests.
type MemoryStore struct {
	c *ttlcache.Cache[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c: ttlcache.New[string, string](ttlcache.WithDisableTouchOnHit[string, string]()),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (mo.Option[string], error) {
	item := s.c.Get(key)
	if item == nil || item.IsExpired() {
		return mo.None[string](), nil
	}
	return mo.Some(item.Value()), nil
}

func (s *MemoryStore) SetEx(_ context.Context, key string, ttl time.Duration, value string) error {
	s.c.Set(key, value, ttl)
	return nil
}

// Len reports the number of entries, expired ones included until the next cleanup.
func (s *MemoryStore) Len() int {
	return s.c.Len()
}
