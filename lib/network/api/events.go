package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"boscoin.io/tally/lib/common/observer"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/network/httputils"
)

// EventFilter selects the events by the query parameters; every given
// condition must match.
type EventFilter struct {
	Type   event.Type
	Target string
	Source string
	TxHash string
}

func NewEventFilter(query url.Values) (f EventFilter, err error) {
	f = EventFilter{
		Type:   event.Type(query.Get(observer.ConditionType)),
		Target: query.Get(observer.ConditionTarget),
		Source: query.Get(observer.ConditionSource),
		TxHash: query.Get(observer.ConditionTxHash),
	}

	if len(f.Type) > 0 && !event.IsValidType(f.Type) {
		err = errors.BadRequestParameter.Clone().SetData(observer.ConditionType, f.Type)
	}

	return
}

func (f EventFilter) Match(r event.Record) bool {
	switch {
	case len(f.Type) > 0 && f.Type != r.Type:
		return false
	case len(f.Target) > 0 && f.Target != r.Target():
		return false
	case len(f.Source) > 0 && f.Source != r.Source:
		return false
	case len(f.TxHash) > 0 && f.TxHash != r.TxHash:
		return false
	}

	return true
}

// Subject is the narrowest observable subject of the filter; the other
// conditions are checked by `Match`.
func (f EventFilter) Subject() observer.Subject {
	switch {
	case len(f.TxHash) > 0:
		return observer.NewSubject(observer.ResourceEvent, observer.ConditionTxHash, f.TxHash)
	case len(f.Target) > 0:
		return observer.NewSubject(observer.ResourceEvent, observer.ConditionTarget, f.Target)
	case len(f.Source) > 0:
		return observer.NewSubject(observer.ResourceEvent, observer.ConditionSource, f.Source)
	case len(f.Type) > 0:
		return observer.NewSubject(observer.ResourceEvent, observer.ConditionType, string(f.Type))
	}

	return observer.NewSubject(observer.ResourceEvent, observer.ConditionAll, "")
}

// GetEventsHandler streams the committed events; only `text/event-stream`
// is allowed.
func (api NetworkHandlerAPI) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	if !httputils.IsEventStream(r) {
		httputils.WriteError(w, errors.BadRequestParameter.Clone().SetData("accept", "text/event-stream"))
		return
	}

	filter, err := NewEventFilter(r.URL.Query())
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	renderFunc := func(args ...interface{}) ([]byte, error) {
		if len(args) <= 1 {
			return nil, nil
		}
		record, ok := args[1].(event.Record)
		if !ok || !filter.Match(record) {
			return nil, nil
		}
		return json.Marshal(record)
	}

	es := NewEventStream(w, r, renderFunc, DefaultContentType)
	es.Run(api.observable, filter.Subject().String())
}
