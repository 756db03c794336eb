// Package jsonrpc serves the raw storage over JSON-RPC for debugging. It is
// read-only and must not be exposed to the public network.
package jsonrpc

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/tally/lib/storage"
)

const MaxLimitListOptions uint64 = 10000

type DBEchoArgs string
type DBEchoResult string

type DBHasArgs string
type DBHasResult bool

type DBGetArgs string
type DBGetResult storage.IterItem

type GetIteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

type DBGetIteratorArgs struct {
	Prefix  string
	Options GetIteratorOptions
}

type DBGetIteratorResult struct {
	Limit uint64
	Items []storage.IterItem
}

type DBApp struct {
	st *storage.LevelDBBackend
}

func (j *DBApp) Echo(r *http.Request, args *DBEchoArgs, result *DBEchoResult) error {
	*result = DBEchoResult(string(*args))
	return nil
}

func (j *DBApp) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	o, err := j.st.Has(string(*args))
	if err != nil {
		return err
	}

	*result = DBHasResult(o)
	return nil
}

func (j *DBApp) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	o, err := j.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = DBGetResult{Key: []byte(*args), Value: o}
	return nil
}

// GetIterator collects the items at once; the limit is capped by
// `MaxLimitListOptions`.
func (j *DBApp) GetIterator(r *http.Request, args *DBGetIteratorArgs, result *DBGetIteratorResult) error {
	limit := args.Options.Limit
	if limit < 1 || limit > MaxLimitListOptions {
		limit = MaxLimitListOptions
	}

	options := storage.NewDefaultListOptions(
		args.Options.Reverse,
		args.Options.Cursor,
		limit,
	)

	it, closeFunc := j.st.GetIterator(args.Prefix, options)
	defer closeFunc()

	collected := []storage.IterItem{}
	for {
		v, hasNext := it()
		if !hasNext {
			break
		}

		collected = append(collected, v)
	}

	result.Items = collected
	result.Limit = limit

	return nil
}

type server struct {
	*rpc.Server
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding",
	)

	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

// NewRouter serves the "DB" service at `path`.
func NewRouter(st *storage.LevelDBBackend, path string) (*mux.Router, error) {
	s := &server{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	if err := s.RegisterService(&DBApp{st: st}, "DB"); err != nil {
		return nil, err
	}

	if len(path) < 1 {
		path = "/"
	}

	router := mux.NewRouter()
	router.Handle(path, s)

	return router, nil
}
