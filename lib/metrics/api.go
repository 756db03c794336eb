package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type APIMetrics struct {
	RequestsTotal          metrics.Counter
	RequestErrorsTotal     metrics.Counter
	RequestDurationSeconds metrics.Histogram
	StreamClients          metrics.Gauge
}

// ObserveRequest is called once for each finished request; the status over
// 399 also counts as error.
func (m *APIMetrics) ObserveRequest(endpoint, method string, status int, begin time.Time) {
	labels := []string{"endpoint", endpoint, "method", method, "status", strconv.Itoa(status)}

	m.RequestsTotal.With(labels...).Add(1)
	if status >= 400 {
		m.RequestErrorsTotal.With(labels...).Add(1)
	}
	m.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
}

func PromAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Total number of requests.",
		}, []string{"endpoint", "method", "status"}),
		RequestErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_errors_total",
			Help:      "Total number of request errors",
		}, []string{"endpoint", "method", "status"}),
		RequestDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time processing one request.",
		}, []string{"endpoint", "method", "status"}),
		StreamClients: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "stream_clients",
			Help:      "Number of connected event stream clients.",
		}, []string{}),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal:          discard.NewCounter(),
		RequestErrorsTotal:     discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
		StreamClients:          discard.NewGauge(),
	}
}
