package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/runtime"
	"boscoin.io/tally/lib/storage"
)

// prepareAPIServer runs the api with the own observable, so the streams of
// the tests do not share the events.
func prepareAPIServer() (*httptest.Server, *runtime.Runtime) {
	conf := common.NewTestConfig()
	o := observable.New()
	rt := runtime.NewRuntime(storage.NewTestStorage(), conf, event.NewObserverSink(o))

	apiHandler, err := NewNetworkHandlerAPI(rt, UrlPathPrefixAPI)
	if err != nil {
		panic(err)
	}
	apiHandler.SetObservable(o)

	return httptest.NewServer(NewRouter(apiHandler, false)), rt
}

func apiURL(ts *httptest.Server, pattern string) string {
	return ts.URL + UrlPathPrefixAPI + "/" + APIVersionV1 + pattern
}

func request(ts *httptest.Server, url string, streaming bool) (*http.Response, error) {
	req, err := http.NewRequest("GET", apiURL(ts, url), nil)
	if err != nil {
		return nil, err
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}

	return ts.Client().Do(req)
}

func post(ts *httptest.Server, url string, contentType string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest("POST", apiURL(ts, url), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	return ts.Client().Do(req)
}
