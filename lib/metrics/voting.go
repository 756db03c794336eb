package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type VotingMetrics struct {
	TransactionsTotal      metrics.Counter
	OperationsTotal        metrics.Counter
	EventsTotal            metrics.Counter
	ApplyDurationSeconds   metrics.Histogram
	LastAppliedTransaction metrics.Gauge
}

func (m *VotingMetrics) AddTransaction(status string, begin time.Time) {
	m.TransactionsTotal.With("status", status).Add(1)
	m.ApplyDurationSeconds.With("status", status).Observe(time.Since(begin).Seconds())
	if status == TransactionStatusSucceeded {
		m.LastAppliedTransaction.Set(float64(time.Now().Unix()))
	}
}

func (m *VotingMetrics) AddOperation(opType string) {
	m.OperationsTotal.With("type", opType).Add(1)
}

func (m *VotingMetrics) AddEvent(eventType string) {
	m.EventsTotal.With("type", eventType).Add(1)
}

func PromVotingMetrics() *VotingMetrics {
	return &VotingMetrics{
		TransactionsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "transactions_total",
			Help:      "Total number of applied transactions.",
		}, []string{"status"}),
		OperationsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "operations_total",
			Help:      "Total number of committed operations.",
		}, []string{"type"}),
		EventsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "events_total",
			Help:      "Total number of committed events.",
		}, []string{"type"}),
		ApplyDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "apply_duration_seconds",
			Help:      "Time applying one transaction.",
		}, []string{"status"}),
		LastAppliedTransaction: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "last_applied_timestamp",
			Help:      "Unix time of the last committed transaction.",
		}, []string{}),
	}
}

func NopVotingMetrics() *VotingMetrics {
	return &VotingMetrics{
		TransactionsTotal:      discard.NewCounter(),
		OperationsTotal:        discard.NewCounter(),
		EventsTotal:            discard.NewCounter(),
		ApplyDurationSeconds:   discard.NewHistogram(),
		LastAppliedTransaction: discard.NewGauge(),
	}
}
