package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics returns middleware that records request counts and latency on reg.
// Collectors are labelled by the module name so several modules can share a registry.
func Metrics(module string, reg prometheus.Registerer) (func(http.Handler) http.Handler, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "canopy",
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "HTTP requests by method and status code.",
		ConstLabels: prometheus.Labels{"module": module},
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "canopy",
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "HTTP request latency by method.",
		ConstLabels: prometheus.Labels{"module": module},
		Buckets:     prometheus.DefBuckets,
	}, []string{"method"})

	for _, c := range []prometheus.Collector{requests, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}, nil
}
