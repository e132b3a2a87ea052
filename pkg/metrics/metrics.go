// Package metrics provides a Prometheus registry and its HTTP exposition handler.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// System owns the process metrics registry.
type System interface {
	// Registerer is where domain systems register their collectors.
	Registerer() prometheus.Registerer
	// Handler serves the registry in the Prometheus exposition format.
	Handler() http.Handler
	Path() string
	Enabled() bool
}

type metrics struct {
	registry *prometheus.Registry
	cfg      Config
	logger   *slog.Logger
}

// New creates a metrics system with Go runtime and build info collectors registered.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	registry := prometheus.NewRegistry()

	if err := registry.Register(collectors.NewBuildInfoCollector()); err != nil {
		return nil, err
	}
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	return &metrics{
		registry: registry,
		cfg:      *cfg,
		logger:   logger.With("system", "metrics"),
	}, nil
}

func (m *metrics) Registerer() prometheus.Registerer {
	return m.registry
}

func (m *metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(m.logger.Handler(), slog.LevelError),
	})
}

func (m *metrics) Path() string {
	return m.cfg.Path
}

func (m *metrics) Enabled() bool {
	return m.cfg.Enabled
}
