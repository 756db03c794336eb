package event

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/GianlucaGuarini/go-observable"
	"github.com/stretchr/testify/require"
)

func TestRecordJSON(t *testing.T) {
	events := []Event{
		Voted{Who: "GWHO", Candidate: "GCANDIDATE"},
		CandidateAdded{Candidate: "GCANDIDATE"},
		CandidateRemoved{Candidate: "GCANDIDATE"},
		CandidateAddedOrUpdated{Candidate: "GCANDIDATE"},
	}

	for _, e := range events {
		r := NewRecord("hash", "GSOURCE", e)
		b, err := json.Marshal(r)
		require.NoError(t, err)

		var decoded Record
		require.NoError(t, json.Unmarshal(b, &decoded))
		require.Equal(t, r, decoded)
		require.Equal(t, e, decoded.Body)
		require.Equal(t, "GCANDIDATE", decoded.Target())
	}

	var unknown Record
	err := json.Unmarshal([]byte(`{"type":"killme","body":{}}`), &unknown)
	require.Error(t, err)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	b.Emit(CandidateAdded{Candidate: "A"})
	b.Emit(Voted{Who: "U", Candidate: "A"})
	require.Equal(t, 2, b.Len())
	require.Equal(t, []Event{CandidateAdded{Candidate: "A"}, Voted{Who: "U", Candidate: "A"}}, b.Events())

	records := b.Records("hash", "U")
	require.Equal(t, 2, len(records))
	require.Equal(t, TypeCandidateAdded, records[0].Type)
	require.Equal(t, "hash", records[1].TxHash)
	require.Equal(t, 0, b.Len())

	b.Emit(CandidateRemoved{Candidate: "A"})
	b.Reset()
	require.Empty(t, b.Events())
}

func TestObserverSink(t *testing.T) {
	o := observable.New()
	sink := NewObserverSink(o)

	var wg sync.WaitGroup
	var lock sync.Mutex
	received := map[string]Record{}
	for _, name := range []string{"event-*", "event-type=voted", "event-target=A", "event-source=U", "event-txhash=hash"} {
		name := name
		wg.Add(1)
		o.One(name, func(args ...interface{}) {
			lock.Lock()
			defer lock.Unlock()
			received[name] = args[0].(Record)
			wg.Done()
		})
	}

	sink.Emit(NewRecord("hash", "U", Voted{Who: "U", Candidate: "A"}))
	wg.Wait()

	require.Equal(t, 5, len(received))
	for _, r := range received {
		require.Equal(t, TypeVoted, r.Type)
	}
}

func TestSinks(t *testing.T) {
	var a, b []Event
	sinks := Sinks{
		SinkFunc(func(e Event) { a = append(a, e) }),
		SinkFunc(func(e Event) { b = append(b, e) }),
		LogSink{},
	}

	sinks.Emit(CandidateAdded{Candidate: "A"})
	require.Equal(t, 1, len(a))
	require.Equal(t, a, b)
}
