package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/tally/lib/candidate"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/common/observer"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/network/api/resource"
	"boscoin.io/tally/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]
	if !keypair.IsValidAddress(address) {
		httputils.WriteError(w, errors.BadPublicAddress.Clone().SetData("address", address))
		return
	}

	readFunc := func() (payload interface{}, err error) {
		c, err := candidate.GetCandidate(api.storage, address)
		if err != nil {
			return nil, err
		}
		return resource.NewCandidate(c), nil
	}

	if httputils.IsEventStream(r) {
		// after each event the candidate is read again; the removed
		// candidate is shown by the event itself.
		renderFunc := func(args ...interface{}) ([]byte, error) {
			if len(args) <= 1 {
				return nil, fmt.Errorf("render: value is empty")
			}

			var payload interface{}
			switch v := args[1].(type) {
			case nil:
				return nil, nil
			case event.Record:
				if v.Type == event.TypeCandidateRemoved {
					payload = v
					break
				}
				p, err := readFunc()
				if err != nil {
					return nil, err
				}
				payload = p
			default:
				payload = v
			}

			if h, ok := payload.(httputils.HALResource); ok {
				return json.Marshal(h.Resource())
			}
			return json.Marshal(payload)
		}

		es := NewEventStream(w, r, renderFunc, DefaultContentType)
		run := es.Start(
			api.observable,
			observer.NewSubject(observer.ResourceEvent, observer.ConditionTarget, address).String(),
		)
		if payload, err := readFunc(); err == nil {
			es.Render(payload)
		}
		run()
		return
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, payload)
}

func (api NetworkHandlerAPI) GetCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var firstCursor, cursor []byte
	var rs []resource.Resource

	iterFunc, closeFunc := candidate.GetCandidates(api.storage, p.ListOptions())
	for {
		c, hasNext, c0 := iterFunc()
		if !hasNext {
			break
		}
		cursor = c0
		if len(firstCursor) < 1 {
			firstCursor = c0
		}
		rs = append(rs, resource.NewCandidate(c))
	}
	closeFunc()

	var prevLink, nextLink string
	if len(firstCursor) > 0 {
		prevLink = p.PrevLink(firstCursor)
		nextLink = p.NextLink(cursor)
	}

	list := resource.NewResourceList(rs, p.SelfLink(), nextLink, prevLink)
	httputils.WriteJSON(w, http.StatusOK, list)
}
