package metrics

import (
	"testing"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/stretchr/testify/require"
)

// testValue keeps one value for every label values.
type testValue struct {
	v *float64
}

func newTestValue() testValue {
	return testValue{v: new(float64)}
}

func (c testValue) With(...string) metrics.Counter { return c }
func (c testValue) Add(d float64)                  { *c.v += d }
func (c testValue) Value() float64                 { return *c.v }

type testGauge struct {
	testValue
}

func (g testGauge) With(...string) metrics.Gauge { return g }
func (g testGauge) Set(v float64)                { *g.v = v }

func TestAPIMetricsObserveRequest(t *testing.T) {
	requests := newTestValue()
	errs := newTestValue()
	m := &APIMetrics{
		RequestsTotal:          requests,
		RequestErrorsTotal:     errs,
		RequestDurationSeconds: discard.NewHistogram(),
		StreamClients:          discard.NewGauge(),
	}

	m.ObserveRequest("/api/v1/candidates", "GET", 200, time.Now())
	m.ObserveRequest("/api/v1/transactions", "POST", 401, time.Now())

	require.Equal(t, float64(2), requests.Value())
	require.Equal(t, float64(1), errs.Value())
}

func TestVotingMetrics(t *testing.T) {
	txs := newTestValue()
	last := testGauge{newTestValue()}
	m := &VotingMetrics{
		TransactionsTotal:      txs,
		OperationsTotal:        discard.NewCounter(),
		EventsTotal:            discard.NewCounter(),
		ApplyDurationSeconds:   discard.NewHistogram(),
		LastAppliedTransaction: last,
	}

	m.AddTransaction(TransactionStatusFailed, time.Now())
	require.Equal(t, float64(1), txs.Value())
	require.Equal(t, float64(0), last.Value())

	m.AddTransaction(TransactionStatusSucceeded, time.Now())
	require.Equal(t, float64(2), txs.Value())
	require.True(t, last.Value() > 0)
}
