package httpcache

import (
	"fmt"
	"strings"
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"

	"boscoin.io/tally/lib/errors"
)

// RedisCacheAdapter keeps the responses in the redis ring, so the nodes
// behind the same load balancer can share them.
type RedisCacheAdapter struct {
	store *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ropt := redis.RingOptions(*opt)
	return &RedisCacheAdapter{
		store: &redisCache.Codec{
			Redis: redis.NewRing(&ropt),
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.store.Get(key, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response) {
	var e time.Duration
	if !resp.Expiration.IsZero() {
		if e = time.Until(resp.Expiration); e <= 0 {
			return
		}
	}

	a.store.Set(&redisCache.Item{
		Key:        key,
		Object:     resp,
		Expiration: e,
	})
}

func (a *RedisCacheAdapter) Remove(key string) {
	a.store.Delete(key)
}

// NewAdapterFromString makes the adapter from the uri.
//   - `memory://`: in-memory lru cache of `size` responses
//   - `redis://<host:port>[,<host:port>...]`: redis ring
func NewAdapterFromString(s string, size int) (Adapter, error) {
	switch {
	case s == "" || s == "memory://":
		return NewMemCacheAdapter(size)
	case strings.HasPrefix(s, "redis://"):
		addrs := map[string]string{}
		for i, addr := range strings.Split(strings.TrimPrefix(s, "redis://"), ",") {
			if addr = strings.TrimSpace(addr); len(addr) < 1 {
				continue
			}
			addrs[fmt.Sprintf("shard%d", i)] = addr
		}
		if len(addrs) < 1 {
			return nil, errors.InvalidHTTPCacheConfig.Clone().SetData("uri", s)
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: addrs}), nil
	default:
		return nil, errors.InvalidHTTPCacheConfig.Clone().SetData("uri", s)
	}
}
