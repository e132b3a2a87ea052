package explorer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const unhandled = "none"

// Metrics records dispatch counts and latency. A nil *Metrics records nothing.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates explorer metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "canopy",
				Subsystem: "explorer",
				Name:      "dispatch_total",
				Help:      "Tree item deletion requests by handler and result.",
			},
			[]string{"handler", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "canopy",
				Subsystem: "explorer",
				Name:      "dispatch_duration_seconds",
				Help:      "Tree item deletion latency by handler.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"handler"},
		),
	}

	if err := reg.Register(m.dispatches); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(handler string, out Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}

	result := "failure"
	if out.Succeeded {
		result = "success"
	}

	m.dispatches.WithLabelValues(handler, result).Inc()
	m.duration.WithLabelValues(handler).Observe(elapsed.Seconds())
}
