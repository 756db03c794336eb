package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAdapterFromString(t *testing.T) {
	{
		a, err := NewAdapterFromString("memory://", 10)
		require.NoError(t, err)
		require.IsType(t, &MemCacheAdapter{}, a)
	}

	{
		a, err := NewAdapterFromString("", 10)
		require.NoError(t, err)
		require.IsType(t, &MemCacheAdapter{}, a)
	}

	{
		a, err := NewAdapterFromString("redis://127.0.0.1:6379,127.0.0.1:6380", 10)
		require.NoError(t, err)
		require.IsType(t, &RedisCacheAdapter{}, a)
	}

	for _, s := range []string{"redis://", "redis://,", "file:///tmp/cache"} {
		_, err := NewAdapterFromString(s, 10)
		require.Error(t, err, s)
	}
}

func TestRedisCacheAdapterUnreachable(t *testing.T) {
	a := NewRedisCacheAdapter(&RedisRingOptions{
		Addrs:       map[string]string{"shard0": "127.0.0.1:1"},
		DialTimeout: 100 * time.Millisecond,
	})

	a.Set("/rc", &Response{Value: []byte("findme"), StatusCode: 200})
	_, found := a.Get("/rc")
	require.False(t, found)
	a.Remove("/rc")
}
