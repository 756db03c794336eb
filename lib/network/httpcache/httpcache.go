// Package httpcache caches the responses of the GET handlers. Only the
// responses of the configured status codes are cached; the committed
// receipts never change, so their responses are cached without expiration.
package httpcache

import (
	"time"

	"github.com/hashicorp/golang-lru"
)

type Response struct {
	Value      []byte
	StatusCode int
	Header     map[string][]string
	Expiration time.Time
}

type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, resp *Response)
	Remove(key string)
}

type MemCacheAdapter struct {
	lruCache *lru.Cache
}

func NewMemCacheAdapter(size int) (*MemCacheAdapter, error) {
	lruCache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &MemCacheAdapter{lruCache: lruCache}, nil
}

func (a *MemCacheAdapter) Get(key string) (*Response, bool) {
	value, ok := a.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	res, ok := value.(*Response)
	return res, ok
}

func (a *MemCacheAdapter) Set(key string, resp *Response) {
	a.lruCache.Add(key, resp)
}

func (a *MemCacheAdapter) Remove(key string) {
	a.lruCache.Remove(key)
}

func (a *MemCacheAdapter) Len() int {
	return a.lruCache.Len()
}
