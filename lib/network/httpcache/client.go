package httpcache

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/errors"
)

type Client struct {
	adapter     Adapter
	methods     map[string]bool
	statusCodes map[int]time.Duration
	logger      logging.Logger
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods:     map[string]bool{"GET": true},
		statusCodes: map[int]time.Duration{},
		logger:      logging.New("module", "httpcache"),
	}
	c.logger.SetHandler(logging.DiscardHandler())

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.HTTPServerError.Clone().SetData("error", "cache adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

// WithStatusCode caches the response of `code`; zero `ttl` never expires.
func WithStatusCode(code int, ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.statusCodes[code] = ttl
		return nil
	}
}

func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok := c.handleCache(next, w, r); !ok {
			next.ServeHTTP(w, r)
		}
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return c.Middleware(handlerFunc).ServeHTTP
}

func (c *Client) handleCache(next http.Handler, w http.ResponseWriter, r *http.Request) bool {
	if ok := c.methods[r.Method]; !ok {
		return false
	}

	key := cacheKey(r.URL)
	if resp, ok := c.adapter.Get(key); ok {
		if resp.Expiration.IsZero() || resp.Expiration.After(time.Now()) {
			writeResponse(w, resp.StatusCode, resp.Header, resp.Value)
			c.logger.Debug("return cache", "url", key)
			return true
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	value := rec.Body.Bytes()
	if ttl, ok := c.statusCodes[result.StatusCode]; ok {
		resp := &Response{
			Value:      value,
			StatusCode: result.StatusCode,
			Header:     result.Header,
		}
		if ttl > 0 {
			resp.Expiration = time.Now().Add(ttl)
		}
		c.adapter.Set(key, resp)
		c.logger.Debug("page cached", "url", key, "code", result.StatusCode)
	}

	writeResponse(w, result.StatusCode, result.Header, value)
	return true
}

func writeResponse(w http.ResponseWriter, code int, header map[string][]string, value []byte) {
	for k, v := range header {
		w.Header().Set(k, strings.Join(v, ","))
	}
	w.WriteHeader(code)
	w.Write(value)
}

// cacheKey sorts the query parameters, so the same query makes same key.
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, p := range params {
		sort.Strings(p)
	}

	c := *u
	c.RawQuery = params.Encode()
	return c.String()
}
