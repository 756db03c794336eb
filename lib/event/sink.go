package event

import (
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/tally/lib/common/observer"
	"boscoin.io/tally/lib/metrics"
)

// Sink receives events; Emit must not block. The voting operations emit
// into the `Buffer` of the transaction; the runtime passes the committed
// `Record`s to the other sinks.
type Sink interface {
	Emit(Event)
}

type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) {
	f(e)
}

// Buffer keeps the events of one transaction until it is committed.
type Buffer struct {
	sync.Mutex
	events []Event
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Emit(e Event) {
	b.Lock()
	defer b.Unlock()

	b.events = append(b.events, e)
}

func (b *Buffer) Events() []Event {
	b.Lock()
	defer b.Unlock()

	return append([]Event(nil), b.events...)
}

func (b *Buffer) Len() int {
	b.Lock()
	defer b.Unlock()

	return len(b.events)
}

func (b *Buffer) Reset() {
	b.Lock()
	defer b.Unlock()

	b.events = nil
}

// Records returns the buffered events as `Record`s and resets the buffer.
func (b *Buffer) Records(txHash, source string) []Record {
	b.Lock()
	defer b.Unlock()

	records := make([]Record, 0, len(b.events))
	for _, e := range b.events {
		records = append(records, NewRecord(txHash, source, e))
	}
	b.events = nil

	return records
}

// ObserverSink triggers the observable with the subjects of event,
//   - "event-*"
//   - "event-type=<type>"
//   - "event-target=<candidate>"
//   - "event-source=<transaction source>"
//   - "event-txhash=<transaction hash>"
type ObserverSink struct {
	observable *observable.Observable
}

func NewObserverSink(o *observable.Observable) ObserverSink {
	if o == nil {
		o = observer.EventObserver
	}

	return ObserverSink{observable: o}
}

func Subjects(r Record) []observer.Subject {
	return []observer.Subject{
		observer.NewSubject(observer.ResourceEvent, observer.ConditionAll, ""),
		observer.NewSubject(observer.ResourceEvent, observer.ConditionType, string(r.Type)),
		observer.NewSubject(observer.ResourceEvent, observer.ConditionTarget, r.Target()),
		observer.NewSubject(observer.ResourceEvent, observer.ConditionSource, r.Source),
		observer.NewSubject(observer.ResourceEvent, observer.ConditionTxHash, r.TxHash),
	}
}

func (s ObserverSink) Emit(e Event) {
	r := asRecord(e)

	var names string
	for i, subject := range Subjects(r) {
		if i > 0 {
			names += " "
		}
		names += subject.String()
	}

	s.observable.Trigger(names, r)
}

// LogSink writes the events to the logger of this package.
type LogSink struct{}

func (LogSink) Emit(e Event) {
	r := asRecord(e)
	log.Info("event", "type", r.Type, "target", r.Target(), "source", r.Source, "tx", r.TxHash)
}

// MetricSink counts the events by type.
type MetricSink struct{}

func (MetricSink) Emit(e Event) {
	metrics.Voting.AddEvent(string(e.EventType()))
}

// Sinks emits to every sink in order.
type Sinks []Sink

func (s Sinks) Emit(e Event) {
	for _, sink := range s {
		sink.Emit(e)
	}
}

func asRecord(e Event) Record {
	if r, ok := e.(Record); ok {
		return r
	}

	return NewRecord("", "", e)
}
