package services

import (
	"context"
	"time"

	"rates-service/internal/cache"
	"rates-service/internal/models"

	"github.com/samber/mo"
)

// Publisher receives every freshly fetched value.
type Publisher interface {
	PublishObjectAsync(key []byte, obj any)
}

type CacheService[T any] struct {
	cache     *cache.Cache
	publisher Publisher
	fetcher   Fetcher[T]
}

func NewCacheService[T any](
	c *cache.Cache,
	publisher Publisher,
	fetcher Fetcher[T],
) *CacheService[T] {
	return &CacheService[T]{
		cache:     c,
		publisher: publisher,
		fetcher:   fetcher,
	}
}

func (s *CacheService[T]) Get(ctx context.Context, params ...string) (mo.Result[T], error) {
	key := s.fetcher.CacheKey(params...)

	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (T, error) {
		result, err := s.fetcher.Fetch(ctx, params...)
		if err != nil {
			return result, err
		}

		if s.publisher != nil {
			s.publisher.PublishObjectAsync([]byte(key), models.RateEvent{
				Key:       key,
				Source:    s.fetcher.Source(),
				Value:     result,
				FetchedAt: time.Now().UTC(),
			})
		}
		return result, nil
	})
}
