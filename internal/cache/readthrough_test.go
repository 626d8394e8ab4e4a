package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/mock"
	"github.com/fhuszti/katasu-ms-go/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID string `json:"id"`
}

type counter struct {
	calls int
	out   result.Result[*user]
}

func (c *counter) produce(ctx context.Context) result.Result[*user] {
	c.calls++
	return c.out
}

func TestGetCached_HitSkipsProducer(t *testing.T) {
	store := mock.NewCache()
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}
	policy := Policy[*user]{TTL: time.Hour}

	first := GetCached(ctx, store, "user:42", policy, p.produce)
	second := GetCached(ctx, store, "user:42", policy, p.produce)

	assert.Equal(t, 1, p.calls)
	require.True(t, second.Success)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, "42", second.Data.ID)
	assert.Equal(t, time.Hour, store.TTLs["user:42"])
	assert.JSONEq(t, `{"success":true,"data":{"id":"42"}}`, store.Entries["user:42"])
}

func TestGetCached_InvalidateForcesProducer(t *testing.T) {
	store := mock.NewCache()
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}
	policy := Policy[*user]{TTL: time.Hour}

	GetCached(ctx, store, "user:42", policy, p.produce)
	Invalidate(ctx, store, "user:42")
	GetCached(ctx, store, "user:42", policy, p.produce)

	assert.Equal(t, 2, p.calls)
}

func TestGetCached_RevalidateTagForcesProducer(t *testing.T) {
	store := mock.NewCache()
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}
	policy := Policy[*user]{
		Tags:    []string{UserTag("42")},
		TagsFor: func(u *user) []string { return []string{"/extra/" + u.ID} },
	}

	GetCached(ctx, store, "user:42", policy, p.produce)
	assert.Equal(t, []string{"user:42"}, store.Tags["/user/42"])
	assert.Equal(t, []string{"user:42"}, store.Tags["/extra/42"])
	assert.Equal(t, time.Duration(0), store.TTLs["user:42"])

	RevalidateTag(ctx, store, "/extra/42")
	GetCached(ctx, store, "user:42", policy, p.produce)
	assert.Equal(t, 2, p.calls)
}

func TestGetCached_FailureNotCachedByDefault(t *testing.T) {
	store := mock.NewCache()
	ctx := context.Background()
	p := &counter{out: result.NotFound[*user]("user not found")}
	policy := Policy[*user]{TTL: time.Hour, Tags: []string{"/user/42"}}

	first := GetCached(ctx, store, "user:42", policy, p.produce)
	second := GetCached(ctx, store, "user:42", policy, p.produce)

	assert.False(t, first.Success)
	assert.True(t, second.IsNotFound())
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, 0, store.PutCalls)
	assert.Contains(t, store.Deleted, "user:42")
}

func TestGetCached_FailureCachedWhenAsked(t *testing.T) {
	store := mock.NewCache()
	ctx := context.Background()
	p := &counter{out: result.Fail[*user]("db down")}
	policy := Policy[*user]{TTL: time.Minute, CacheFailures: true}

	GetCached(ctx, store, "user:42", policy, p.produce)
	second := GetCached(ctx, store, "user:42", policy, p.produce)

	assert.Equal(t, 1, p.calls)
	require.False(t, second.Success)
	assert.Equal(t, "db down", second.Error.Message)
}

func TestGetCached_StoreErrorsFallThrough(t *testing.T) {
	store := mock.NewCache()
	store.GetErr = errors.New("redis down")
	store.PutErr = errors.New("redis down")
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}

	got := GetCached(ctx, store, "user:42", Policy[*user]{TTL: time.Hour}, p.produce)

	require.True(t, got.Success)
	assert.Equal(t, "42", got.Data.ID)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 1, store.PutCalls)
}

func TestGetCached_UndecodableEntryIsReplaced(t *testing.T) {
	store := mock.NewCache()
	store.Entries["user:42"] = "{ not valid json }"
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}

	got := GetCached(ctx, store, "user:42", Policy[*user]{}, p.produce)

	assert.True(t, got.Success)
	assert.Equal(t, 1, p.calls)
	assert.JSONEq(t, `{"success":true,"data":{"id":"42"}}`, store.Entries["user:42"])
}

func TestGetCached_InvalidEnvelopeIsReplaced(t *testing.T) {
	store := mock.NewCache()
	store.Entries["user:42"] = `{"success":false}`
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}

	GetCached(ctx, store, "user:42", Policy[*user]{}, p.produce)

	assert.Equal(t, 1, p.calls)
}

func TestInvalidate_ErrorsAreSwallowed(t *testing.T) {
	store := mock.NewCache()
	store.DelErr = errors.New("boom")
	store.RevalidateErr = errors.New("boom")
	ctx := context.Background()

	assert.NotPanics(t, func() {
		Invalidate(ctx, store, "user:1")
		RevalidateTag(ctx, store, "/user/1")
	})
	assert.Equal(t, []string{"user:1"}, store.Deleted)
	assert.Equal(t, []string{"/user/1"}, store.Revalidated)
}

func TestGetCached_Redis(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()
	p := &counter{out: result.Ok(&user{ID: "42"})}
	policy := Policy[*user]{TTL: time.Hour, Tags: []string{UserTag("42")}}

	GetCached(ctx, c, UserKey("42"), policy, p.produce)
	got := GetCached(ctx, c, UserKey("42"), policy, p.produce)
	require.True(t, got.Success)
	assert.Equal(t, 1, p.calls)
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("user:42").Seconds(), 1)

	RevalidateTag(ctx, c, UserTag("42"))
	GetCached(ctx, c, UserKey("42"), policy, p.produce)
	assert.Equal(t, 2, p.calls)

	mr.FastForward(2 * time.Hour)
	GetCached(ctx, c, UserKey("42"), policy, p.produce)
	assert.Equal(t, 3, p.calls)
}

func TestGetCached_ScalarZeroValue(t *testing.T) {
	store := mock.NewCache()
	ctx := context.Background()
	calls := 0
	produce := func(ctx context.Context) result.Result[int] {
		calls++
		return result.Ok(0)
	}

	GetCached(ctx, store, UserImageCountKey("u"), Policy[int]{}, produce)
	got := GetCached(ctx, store, UserImageCountKey("u"), Policy[int]{}, produce)

	assert.Equal(t, 1, calls)
	assert.True(t, got.Success)
	assert.Equal(t, 0, got.Data)
	assert.JSONEq(t, `{"success":true,"data":0}`, store.Entries[UserImageCountKey("u")])
}
