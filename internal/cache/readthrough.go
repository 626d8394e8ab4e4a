package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

// Policy controls how GetCached stores a freshly produced result.
type Policy[T any] struct {
	// TTL of the entry. Zero means no expiry: only invalidation removes it.
	TTL time.Duration
	// CacheFailures stores unsuccessful results too. When false a failure is
	// returned as is and any previous entry for the key is dropped.
	CacheFailures bool
	// Tags are attached to every write.
	Tags []string
	// TagsFor derives extra tags from successful data, e.g. the owner of an image.
	TagsFor func(data T) []string
}

func (p Policy[T]) tags(res result.Result[T]) []string {
	tags := append([]string(nil), p.Tags...)
	if res.Success && p.TagsFor != nil {
		tags = append(tags, p.TagsFor(res.Data)...)
	}
	return tags
}

// Producer computes the value of a key on a cache miss.
type Producer[T any] func(ctx context.Context) result.Result[T]

// GetCached returns the result stored under key, or runs produce once and
// stores its result. Store failures and undecodable entries count as misses.
// No lock is taken: concurrent misses may both produce and the last write wins.
func GetCached[T any](ctx context.Context, store port.Cache, key string, policy Policy[T], produce Producer[T]) result.Result[T] {
	raw, hit, err := store.Get(ctx, key)
	if err != nil {
		logger.Warnf(ctx, "cache read for %q failed, using source: %v", key, err)
	}
	if hit {
		var cached result.Result[T]
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.Valid() {
			return cached
		}
		logger.Warnf(ctx, "discarding undecodable cache entry %q", key)
	}

	res := produce(ctx)
	if !res.Success && !policy.CacheFailures {
		Invalidate(ctx, store, key)
		return res
	}

	data, err := json.Marshal(res)
	if err != nil {
		logger.Warnf(ctx, "could not encode %q for cache: %v", key, err)
		return res
	}
	if err := store.Put(ctx, key, string(data), policy.TTL, policy.tags(res)...); err != nil {
		logger.Warnf(ctx, "cache write for %q failed: %v", key, err)
	}
	return res
}

// Invalidate deletes exact keys. Failures are logged: a missed delete only
// leaves the entry until its TTL runs out.
func Invalidate(ctx context.Context, store port.Cache, keys ...string) {
	if err := store.Delete(ctx, keys...); err != nil {
		logger.Warnf(ctx, "cache invalidation of %v failed: %v", keys, err)
	}
}

// RevalidateTag deletes every entry written under tag.
func RevalidateTag(ctx context.Context, store port.Cache, tag string) {
	if err := store.RevalidateTag(ctx, tag); err != nil {
		logger.Warnf(ctx, "cache revalidation of tag %q failed: %v", tag, err)
	}
}
