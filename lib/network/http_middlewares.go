package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/metrics"
	"boscoin.io/tally/lib/network/httputils"
)

const HeaderRequestID = "X-Request-Id"

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					httputils.WriteJSON(w, http.StatusInternalServerError, err)
					log.Error("recover an panic", "err", err, "url", r.URL.String())
					if printStack {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits the requests by the client ip; the unlimited
// rule passes every request.
func RateLimitMiddleware(rule common.RateLimitRule) mux.MiddlewareFunc {
	if rule.IsUnlimited() {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	log.Debug("rate limit enabled", "rule", rule.Formatted)
	middleware := stdlib.NewMiddleware(limiter.New(memory.NewStore(), rule.Rate))

	return middleware.Handler
}

// RequestIDMiddleware keeps the request id of the client or makes new one,
// and sets it to the response header.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if len(id) < 1 {
			id = common.GenerateUUID()
			r.Header.Set(HeaderRequestID, id)
		}
		w.Header().Set(HeaderRequestID, id)

		next.ServeHTTP(w, r)
	})
}

// MetricsMiddleware observes the finished requests by the route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		metrics.API.ObserveRequest(endpoint, r.Method, sw.status, begin)
	})
}

func CORSMiddleware() mux.MiddlewareFunc {
	allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
	allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
	allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control", HeaderRequestID})

	return ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
}

// statusWriter keeps the status code; it is still `http.Flusher` for the
// event streams.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
