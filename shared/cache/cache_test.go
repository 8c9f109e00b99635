package cache_test

import (
	"context"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func newRedisCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client, mocks.NewOtel()), server
}

func implementations(t *testing.T) map[string]cache.Cache {
	t.Helper()

	redisCache, _ := newRedisCache(t)

	return map[string]cache.Cache{
		"redis":  redisCache,
		"memory": cache.New(nil, mocks.NewOtel()),
	}
}

func TestCache_SaveGetDelete(t *testing.T) {
	for name, store := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "hotel_user:abc", session{ID: "u-1", Role: "admin"}, 60))

			var got session
			require.NoError(t, store.Get(ctx, "hotel_user:abc", &got))
			assert.Equal(t, session{ID: "u-1", Role: "admin"}, got)

			require.NoError(t, store.Save(ctx, "plain", "value", 60))

			var plain string
			require.NoError(t, store.Get(ctx, "plain", &plain))
			assert.Equal(t, "value", plain)

			require.NoError(t, store.Delete(ctx, "hotel_user:abc"))

			err := store.Get(ctx, "hotel_user:abc", &got)
			assert.ErrorIs(t, err, cache.Nil)
		})
	}
}

func TestCache_Clear(t *testing.T) {
	for name, store := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "room:list:page=1", []int{1}, 60))
			require.NoError(t, store.Save(ctx, "room:r-1", []int{2}, 60))
			require.NoError(t, store.Save(ctx, "booking:b-1", []int{3}, 60))

			require.NoError(t, store.Clear(ctx, "room:*"))

			var out []int
			assert.ErrorIs(t, store.Get(ctx, "room:list:page=1", &out), cache.Nil)
			assert.ErrorIs(t, store.Get(ctx, "room:r-1", &out), cache.Nil)
			require.NoError(t, store.Get(ctx, "booking:b-1", &out))
			assert.Equal(t, []int{3}, out)
		})
	}
}

func TestCache_ZeroDurationSkipsStore(t *testing.T) {
	for name, store := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "room:get:r-1", "cached", 0))

			var out string
			assert.ErrorIs(t, store.Get(ctx, "room:get:r-1", &out), cache.Nil)
		})
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	store, server := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", "v", 1))
	server.FastForward(2 * time.Second)

	var out string
	assert.ErrorIs(t, store.Get(ctx, "short", &out), cache.Nil)
}
