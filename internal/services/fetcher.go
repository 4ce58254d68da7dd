package services

import "context"

// Fetcher knows how to name and fetch one kind of upstream value.
type Fetcher[T any] interface {
	Source() string
	CacheKey(params ...string) string
	Fetch(ctx context.Context, params ...string) (T, error)
}
