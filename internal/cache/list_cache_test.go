package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestListCacheRoundTrip(t *testing.T) {
	_, rdb := newTestCache(t)
	c := NewListCache[item](rdb, "note:list", time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "all")
	require.NoError(t, err)
	assert.False(t, ok)

	want := []item{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}}
	require.NoError(t, c.Set(ctx, "all", want))

	got, ok, err := c.Get(ctx, "all")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestListCacheEmptyListIsAHit(t *testing.T) {
	_, rdb := newTestCache(t)
	c := NewListCache[item](rdb, "note:list", time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "title:none", nil))
	got, ok, err := c.Get(ctx, "title:none")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestListCacheInvalidateAllKeepsOtherPrefixes(t *testing.T) {
	mr, rdb := newTestCache(t)
	notes := NewListCache[item](rdb, "note:list", time.Minute)
	users := NewListCache[item](rdb, "user:list", time.Minute)
	ctx := context.Background()

	require.NoError(t, notes.Set(ctx, "all", []item{{ID: "1"}}))
	require.NoError(t, notes.Set(ctx, "user:42", []item{{ID: "1"}}))
	require.NoError(t, users.Set(ctx, "all", []item{{ID: "u"}}))

	require.NoError(t, notes.InvalidateAll(ctx))

	assert.False(t, mr.Exists("note:list:all"))
	assert.False(t, mr.Exists("note:list:user:42"))
	assert.True(t, mr.Exists("user:list:all"))
}

func TestListCacheTTL(t *testing.T) {
	mr, rdb := newTestCache(t)
	c := NewListCache[item](rdb, "note:list", 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "all", []item{{ID: "1"}}))
	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, "all")
	require.NoError(t, err)
	assert.False(t, ok)
}
