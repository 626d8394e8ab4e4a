package mock

import (
	"context"
	"sync"
	"time"
)

// Cache is an in-memory cache recording every call, for tests.
type Cache struct {
	mu sync.Mutex

	// stored values
	Entries map[string]string
	TTLs    map[string]time.Duration
	Tags    map[string][]string

	// errors
	GetErr        error
	PutErr        error
	DelErr        error
	RevalidateErr error

	// calls
	GetCalls    int
	PutCalls    int
	Deleted     []string
	Revalidated []string
}

func NewCache() *Cache {
	return &Cache{
		Entries: map[string]string{},
		TTLs:    map[string]time.Duration{},
		Tags:    map[string][]string{},
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++
	if c.GetErr != nil {
		return "", false, c.GetErr
	}
	v, ok := c.Entries[key]
	return v, ok, nil
}

func (c *Cache) Put(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PutCalls++
	if c.PutErr != nil {
		return c.PutErr
	}
	c.Entries[key] = value
	c.TTLs[key] = ttl
	for _, t := range tags {
		c.Tags[t] = append(c.Tags[t], key)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Deleted = append(c.Deleted, keys...)
	if c.DelErr != nil {
		return c.DelErr
	}
	for _, k := range keys {
		delete(c.Entries, k)
		delete(c.TTLs, k)
	}
	return nil
}

func (c *Cache) RevalidateTag(ctx context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Revalidated = append(c.Revalidated, tag)
	if c.RevalidateErr != nil {
		return c.RevalidateErr
	}
	for _, k := range c.Tags[tag] {
		delete(c.Entries, k)
		delete(c.TTLs, k)
	}
	delete(c.Tags, tag)
	return nil
}

// RevalidatedCount returns how many times tag was revalidated.
func (c *Cache) RevalidatedCount(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.Revalidated {
		if t == tag {
			n++
		}
	}
	return n
}
