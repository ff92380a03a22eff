package xcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	gocache "github.com/patrickmn/go-cache"
)

func TestNewMemory(t *testing.T) {
	client := gocache.New(5*time.Minute, 10*time.Minute)
	cache := NewMemory[string](client)

	ctx := context.Background()

	err := cache.Set(ctx, "test-key", "test-value")
	require.NoError(t, err)

	value, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	require.Equal(t, "test-value", value)

	require.Equal(t, "cache", cache.GetType())
}

func TestNewMemoryWithOptions(t *testing.T) {
	cache := NewMemoryWithOptions[int](5*time.Minute, 10*time.Minute)

	ctx := context.Background()

	err := cache.Set(ctx, "number", 42)
	require.NoError(t, err)

	value, err := cache.Get(ctx, "number")
	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedis[string](client)

	ctx := context.Background()

	err := cache.Set(ctx, "redis-key", "redis-value")
	require.NoError(t, err)

	value, err := cache.Get(ctx, "redis-key")
	require.NoError(t, err)
	require.Equal(t, "redis-value", value)

	require.Equal(t, "cache", cache.GetType())
}

func TestNewRedisStructRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	type report struct {
		Location string `json:"location"`
		Body     string `json:"body"`
	}

	cache := NewRedis[report](client)

	ctx := context.Background()

	want := report{Location: "NYC", Body: "# Executive Report"}

	err := cache.Set(ctx, "report:NYC:2026", want)
	require.NoError(t, err)

	got, err := cache.Get(ctx, "report:NYC:2026")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNewTwoLevel(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	mem := NewMemoryWithOptions[string](5*time.Minute, 10*time.Minute)
	rds := NewRedis[string](redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	cache := NewTwoLevel[string](mem, rds)

	ctx := context.Background()

	err := cache.Set(ctx, "chained", "value")
	require.NoError(t, err)

	value, err := cache.Get(ctx, "chained")
	require.NoError(t, err)
	require.Equal(t, "value", value)
}

func TestNewFromConfig(t *testing.T) {
	t.Run("unset mode yields noop", func(t *testing.T) {
		cache := NewFromConfig[string](Config{})

		err := cache.Set(context.Background(), "k", "v")
		require.NoError(t, err)

		_, err = cache.Get(context.Background(), "k")
		require.Error(t, err)
	})

	t.Run("memory mode", func(t *testing.T) {
		cache := NewFromConfig[string](Config{Mode: ModeMemory})

		err := cache.Set(context.Background(), "k", "v")
		require.NoError(t, err)

		value, err := cache.Get(context.Background(), "k")
		require.NoError(t, err)
		require.Equal(t, "v", value)
	})

	t.Run("redis mode", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()

		cache := NewFromConfig[string](Config{
			Mode:  ModeRedis,
			Redis: RedisConfig{Addr: mr.Addr()},
		})

		err := cache.Set(context.Background(), "k", "v")
		require.NoError(t, err)

		value, err := cache.Get(context.Background(), "k")
		require.NoError(t, err)
		require.Equal(t, "v", value)
	})
}
