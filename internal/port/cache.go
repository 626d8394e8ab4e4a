package port

import (
	"context"
	"time"
)

// Cache is a string key-value store with expiry and tag-based invalidation.
//
// Get reports a miss as ("", false, nil); only transport failures are errors.
// A zero ttl stores the entry without expiry. Tags passed to Put are recorded
// so that RevalidateTag can later delete every key written under them.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error
	Delete(ctx context.Context, keys ...string) error
	RevalidateTag(ctx context.Context, tag string) error
}
