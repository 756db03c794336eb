package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/tally/lib/network"
	"boscoin.io/tally/lib/network/httputils"
)

const UrlPathPrefixMetric = "/metrics"

// NewRouter serves the api handlers and the metrics. The rate limit and
// CORS apply to the api handlers only.
func NewRouter(api *NetworkHandlerAPI, printStack bool) *mux.Router {
	router := mux.NewRouter()
	router.Use(network.RecoverMiddleware(printStack))
	router.Use(network.RequestIDMiddleware)
	router.Use(network.MetricsMiddleware)

	router.Handle(UrlPathPrefixMetric, promhttp.Handler()).Methods("GET")

	apiRouter := router.NewRoute().Subrouter()
	apiRouter.Use(network.RateLimitMiddleware(api.conf.RateLimitRuleAPI))
	apiRouter.Use(network.CORSMiddleware())
	api.AddHandlers(apiRouter)

	router.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	return router
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	p := httputils.NewStatusProblem(http.StatusNotFound).SetInstance(r.URL.Path)
	httputils.WriteJSON(w, http.StatusNotFound, p)
}
