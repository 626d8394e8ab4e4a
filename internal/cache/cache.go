package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// tagPrefix namespaces the Redis sets that index keys by tag.
const tagPrefix = "tag:"

// putScript writes KEYS[1] and adds it to every tag set in KEYS[2..].
// A tag set lives at least as long as its longest-lived member and never
// expires once it holds a member without TTL.
var putScript = redis.NewScript(`
local ttl = tonumber(ARGV[2])
if ttl > 0 then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
  redis.call('SET', KEYS[1], ARGV[1])
end
for i = 2, #KEYS do
  local existed = redis.call('EXISTS', KEYS[i])
  redis.call('SADD', KEYS[i], KEYS[1])
  if ttl <= 0 then
    redis.call('PERSIST', KEYS[i])
  elseif existed == 0 then
    redis.call('PEXPIRE', KEYS[i], ARGV[2])
  else
    local left = redis.call('PTTL', KEYS[i])
    if left >= 0 and left < ttl then
      redis.call('PEXPIRE', KEYS[i], ARGV[2])
    end
  end
end
return 1
`)

// revalidateScript deletes the members of the tag set KEYS[1] and the set
// itself in one step, so no Put can slip in between.
var revalidateScript = redis.NewScript(`
local members = redis.call('SMEMBERS', KEYS[1])
for i = 1, #members, 500 do
  redis.call('DEL', unpack(members, i, math.min(i + 499, #members)))
end
redis.call('DEL', KEYS[1])
return #members
`)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil // cache miss
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return val, true, nil
}

// Put writes the value and records key under every tag atomically.
func (c *Cache) Put(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error {
	if ttl > 0 {
		log.Printf("creating entry %q in cache, valid until %s...", key, time.Now().Add(ttl).Format(time.RFC1123))
	} else {
		log.Printf("creating entry %q in cache, without expiry...", key)
	}

	ms := ttl.Milliseconds()
	if ttl > 0 && ms == 0 {
		ms = 1
	}
	keys := make([]string, 0, len(tags)+1)
	keys = append(keys, key)
	for _, tag := range tags {
		keys = append(keys, tagKey(tag))
	}

	if err := putScript.Run(ctx, c.client, keys, value, ms).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	log.Printf("deleting cache entries %v...", keys)

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// RevalidateTag deletes every key recorded under tag, then the tag index itself.
func (c *Cache) RevalidateTag(ctx context.Context, tag string) error {
	n, err := revalidateScript.Run(ctx, c.client, []string{tagKey(tag)}).Int64()
	if err != nil {
		return fmt.Errorf("redis revalidate failed: %w", err)
	}
	log.Printf("revalidated cache tag %q, %d entries dropped", tag, n)
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func tagKey(tag string) string {
	return tagPrefix + tag
}
