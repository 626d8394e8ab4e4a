package cache

import (
	"context"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil // always cache miss
}

func (n *NoopCache) Put(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error {
	return nil
}

func (n *NoopCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (n *NoopCache) RevalidateTag(ctx context.Context, tag string) error { return nil }
