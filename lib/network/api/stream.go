package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/tally/lib/metrics"
	"boscoin.io/tally/lib/network/httputils"
)

// DefaultContentType is "application/json"
const DefaultContentType = "application/json"

// EventStream handles chunked responses of a observable trigger
//
// renderFunc uses on observable.On() and Render function
type EventStream struct {
	contentType string
	renderFunc  RenderFunc
	request     *http.Request
	writer      http.ResponseWriter
	flusher     http.Flusher
	err         error
	rendered    bool
	stop        chan struct{}
	lagged      chan struct{}
	lagOnce     sync.Once
}

// StreamBufferSize is the number of the events kept for one stream client;
// the client which falls behind more than this is disconnected.
const StreamBufferSize = 16

// RenderFunc gets the event name and the triggered values. The nil payload
// is not written.
type RenderFunc func(args ...interface{}) ([]byte, error)

var RenderJSONFunc = func(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}
	v := args[1]
	if v == nil {
		return nil, nil
	}

	return json.Marshal(v)
}

// NewDefaultEventStream returns *EventStream with RenderJSONFunc and DefaultContentType
func NewDefaultEventStream(w http.ResponseWriter, r *http.Request) *EventStream {
	return NewEventStream(w, r, RenderJSONFunc, DefaultContentType)
}

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc, ct string) *EventStream {
	es := &EventStream{
		request:     r,
		writer:      w,
		renderFunc:  renderFunc,
		contentType: ct,
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		es.err = fmt.Errorf("http: can't do chunked response")
	} else {
		es.flusher = flusher
	}

	return es
}

// Render makes a chunked response by using RenderFunc and flush it. The
// first call sends the header even if nothing is rendered.
func (s *EventStream) Render(args ...interface{}) {
	if s.err != nil {
		return
	}

	renderArgs := append([]interface{}{"pre"}, args...)

	var bs []byte
	if payload, err := s.renderFunc(renderArgs...); err != nil {
		bs = s.errMessage(err)
	} else {
		bs = payload
	}

	s.writeHeader()
	if bs != nil {
		fmt.Fprintf(s.writer, "%s\n", bs)
	}
	s.flusher.Flush()
}

// Run starts observing events and blocks until the client goes away.
//
// Simple use case:
//
//	es := NewDefaultEventStream(w, r)
//	es.Render(c)
//	es.Run(observer.EventObserver, "event-target=GABC...")
func (s *EventStream) Run(ob *observable.Observable, events ...string) {
	s.Start(ob, events...)()
}

// Start subscribes the events and returns run func. The events triggered
// between Start and run are kept, so the current state can be rendered
// after Start without missing updates. The trigger never waits for the
// client; if the buffer is full, the stream is closed.
func (s *EventStream) Start(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		http.Error(s.writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return func() {}
	}

	event := strings.Join(events, " ")
	msg := make(chan []byte, StreamBufferSize)
	s.stop = make(chan struct{})
	s.lagged = make(chan struct{})

	onFunc := func(args ...interface{}) {
		as := append([]interface{}{event}, args...)
		payload, err := s.renderFunc(as...)
		if err != nil {
			payload = s.errMessage(err)
		}
		if payload == nil {
			return
		}

		select {
		case msg <- payload:
		case <-s.stop:
		case <-s.lagged:
		default:
			s.lagOnce.Do(func() {
				log.Warn("stream client is too slow; closing", "event", event, "remote", s.request.RemoteAddr)
				close(s.lagged)
			})
		}
	}
	ob.On(event, onFunc)
	metrics.API.StreamClients.Add(1)

	return func() {
		defer metrics.API.StreamClients.Add(-1)
		defer ob.Off(event, onFunc)

		s.writeHeader()
		s.flusher.Flush()

		for {
			select {
			case payload := <-msg:
				fmt.Fprintf(s.writer, "%s\n", payload)
				s.flusher.Flush()
			case <-s.lagged:
				close(s.stop)
				return
			case <-s.request.Context().Done():
				close(s.stop)
				return
			}
		}
	}
}

func (s *EventStream) writeHeader() {
	if s.rendered {
		return
	}
	s.writer.Header().Set("Content-Type", s.contentType)
	s.writer.WriteHeader(http.StatusOK)
	s.rendered = true
}

func (s *EventStream) errMessage(err error) []byte {
	p := httputils.NewErrorProblem(err, httputils.StatusCode(err))
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte{}
	}
	return b
}
