package api

import (
	"fmt"
	"net/http"

	"github.com/GianlucaGuarini/go-observable"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/observer"
	"boscoin.io/tally/lib/network/httpcache"
	"boscoin.io/tally/lib/runtime"
	"boscoin.io/tally/lib/storage"
)

var log logging.Logger = logging.New("module", "api")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

const (
	APIVersionV1     = "v1"
	UrlPathPrefixAPI = "/api"
)

// API Endpoint patterns
const (
	GetNodeInfoPattern                 = "/"
	GetCandidatesHandlerPattern        = "/candidates"
	GetCandidateHandlerPattern         = "/candidates/{id}"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	PostTransactionPattern             = "/transactions"
	GetEventsHandlerPattern            = "/events"
)

type NetworkHandlerAPI struct {
	runtime    *runtime.Runtime
	storage    *storage.LevelDBBackend
	conf       common.Config
	urlPrefix  string
	version    string
	cache      *httpcache.Client
	observable *observable.Observable
}

// NewNetworkHandlerAPI serves the state of the runtime; the committed
// receipts are cached in memory.
func NewNetworkHandlerAPI(rt *runtime.Runtime, urlPrefix string) (*NetworkHandlerAPI, error) {
	conf := rt.Config()

	size := conf.HTTPCachePoolSize
	if size < 1 {
		size = common.HTTPCachePoolSize
	}
	adapter, err := httpcache.NewAdapterFromString(conf.HTTPCacheAdapter, size)
	if err != nil {
		return nil, err
	}
	cache, err := httpcache.NewClient(
		httpcache.WithAdapter(adapter),
		httpcache.WithStatusCode(http.StatusOK, 0),
		httpcache.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &NetworkHandlerAPI{
		runtime:    rt,
		storage:    rt.Storage(),
		conf:       conf,
		urlPrefix:  urlPrefix,
		version:    APIVersionV1,
		cache:      cache,
		observable: observer.EventObserver,
	}, nil
}

// SetObservable changes the observable of the event streams; it must be the
// one the runtime publishes to.
func (api *NetworkHandlerAPI) SetObservable(o *observable.Observable) {
	api.observable = o
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// AddHandlers registers the handlers to the router.
func (api *NetworkHandlerAPI) AddHandlers(router *mux.Router) {
	router.HandleFunc(
		api.HandlerURLPattern(GetNodeInfoPattern),
		api.GetNodeInfoHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		api.HandlerURLPattern(GetCandidatesHandlerPattern),
		api.GetCandidatesHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		api.HandlerURLPattern(GetCandidateHandlerPattern),
		api.GetCandidateHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		api.HandlerURLPattern(GetTransactionByHashHandlerPattern),
		api.cache.WrapHandlerFunc(api.GetTransactionByHashHandler),
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		api.HandlerURLPattern(PostTransactionPattern),
		api.PostTransactionsHandler,
	).Methods("POST", "OPTIONS")
	router.HandleFunc(
		api.HandlerURLPattern(GetEventsHandlerPattern),
		api.GetEventsHandler,
	).Methods("GET", "OPTIONS")
}
