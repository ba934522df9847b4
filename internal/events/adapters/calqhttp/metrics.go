package calqhttp

import (
	"errors"
	"time"

	"calq-destination-service/internal/events/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeStatus   = "http_error"
	outcomeNetwork  = "network_error"
)

// Metrics counts every attempt made against the destination, retries included.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calq",
			Subsystem: "destination",
			Name:      "requests_total",
			Help:      "Requests sent to the Calq API by path and outcome.",
		}, []string{"path", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "calq",
			Subsystem: "destination",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests sent to the Calq API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(path, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, outcome).Inc()
	m.duration.WithLabelValues(path).Observe(took.Seconds())
}

func outcomeOf(resp *ports.Response, err error) string {
	var rejected *RejectedError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &rejected):
		return outcomeRejected
	case resp != nil:
		return outcomeStatus
	default:
		return outcomeNetwork
	}
}
