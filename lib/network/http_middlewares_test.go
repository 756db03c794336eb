package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/common"
)

func TestRecoverMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(RecoverMiddleware(false))
	router.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("showme")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "panic: showme")
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {}

	{ // unlimited
		router := mux.NewRouter()
		router.Use(RateLimitMiddleware(common.RateLimitRule{}))
		router.HandleFunc("/", handler)

		for i := 0; i < 10; i++ {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	}

	{ // 2 requests in a minute
		router := mux.NewRouter()
		router.Use(RateLimitMiddleware(common.MustNewRateLimitRule("2-M")))
		router.HandleFunc("/", handler)

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var received string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get(HeaderRequestID)
	}))

	{
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		require.NotEmpty(t, received)
		require.Equal(t, received, rec.Header().Get(HeaderRequestID))
	}

	{
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRequestID, "findme")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, "findme", received)
		require.Equal(t, "findme", rec.Header().Get(HeaderRequestID))
	}
}

func TestMetricsMiddlewareKeepsStatus(t *testing.T) {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware)
	router.HandleFunc("/candidates/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, isFlusher := w.(http.Flusher)
		require.True(t, isFlusher)

		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates/showme", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}
