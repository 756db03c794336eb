package api

import (
	"encoding/json"
	"io/ioutil"
	"mime"
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/network/api/resource"
	"boscoin.io/tally/lib/network/httputils"
	"boscoin.io/tally/lib/runtime"
	"boscoin.io/tally/lib/transaction"
)

// MaxTransactionBodySize limits the request body of the posted transaction.
const MaxTransactionBodySize int64 = 1 << 20

func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	receipt, err := runtime.GetReceipt(api.storage, hash)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}

// PostTransactionsHandler applies the transaction and returns the receipt.
// The failed transaction is returned as problem.
func (api NetworkHandlerAPI) PostTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		httputils.WriteError(w, errors.ContentTypeNotJSON)
		return
	}

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxTransactionBodySize))
	if err != nil {
		httputils.WriteError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	// the invalid utf-8 is replaced by decoding, so the hash would not match
	if !utf8.Valid(body) {
		httputils.WriteError(w, errors.BadRequestParameter.Clone().SetData("error", "body is not valid utf-8"))
		return
	}

	var tx transaction.Transaction
	if err = json.Unmarshal(body, &tx); err != nil {
		if e, ok := err.(*errors.Error); ok {
			httputils.WriteError(w, e)
			return
		}
		httputils.WriteError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	receipt, err := api.runtime.Apply(tx)
	if err != nil {
		log.Debug("transaction rejected", "hash", tx.H.Hash, "error", err)
		httputils.WriteError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}
