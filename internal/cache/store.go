package cache

import (
	"context"
	"time"

	"github.com/samber/mo"
)

// Store is the key/value backend behind Fetch. Values are opaque serialized
// strings; a missing or expired key is None, never an error.
type Store interface {
	Get(ctx context.Context, key string) (mo.Option[string], error)
	SetEx(ctx context.Context, key string, ttl time.Duration, value string) error
}
