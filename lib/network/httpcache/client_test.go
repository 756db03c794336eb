package httpcache

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientCachesOnlyConfiguredStatus(t *testing.T) {
	adapter, err := NewMemCacheAdapter(10)
	require.NoError(t, err)

	client, err := NewClient(WithAdapter(adapter), WithStatusCode(http.StatusOK, 0))
	require.NoError(t, err)

	var called int
	handler := client.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		if r.URL.Query().Get("missing") != "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"called":%d}`, called)
	})

	ts := httptest.NewServer(handler)
	defer ts.Close()

	get := func(path string) (int, string) {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, _ := ioutil.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	code, body := get("/rc?b=2&a=1")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, `{"called":1}`, body)

	code, body = get("/rc?a=1&b=2")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, `{"called":1}`, body)
	require.Equal(t, 1, called)

	get("/rc?missing=1")
	get("/rc?missing=1")
	require.Equal(t, 3, called)
	require.Equal(t, 1, adapter.Len())
}

func TestClientExpiration(t *testing.T) {
	adapter, err := NewMemCacheAdapter(10)
	require.NoError(t, err)

	client, err := NewClient(WithAdapter(adapter), WithStatusCode(http.StatusOK, time.Nanosecond))
	require.NoError(t, err)

	var called int
	handler := client.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/rc", nil))
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 2, called)

	// POST is not cached
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/rc", nil))
	require.Equal(t, 3, called)
}

func TestNewClientWithoutAdapter(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)
}
