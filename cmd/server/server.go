package main

import (
	"context"
	"time"

	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

// NewServer builds infrastructure and modules from cfg. Nothing is started.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"auth", cfg.Auth.Enabled,
		"metrics", cfg.Metrics.Enabled,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start runs subsystem startup and begins serving. Readiness is reported
// asynchronously once every startup hook has completed.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go s.reportReadiness()

	return nil
}

// Shutdown cancels the lifecycle context and waits for shutdown hooks.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func (s *Server) reportReadiness() {
	lc := s.infra.Lifecycle
	lc.WaitForStartup()

	ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
	defer cancel()

	failed := 0
	for name, err := range lc.Check(ctx) {
		if err != nil {
			failed++
			s.infra.Logger.Warn("readiness probe failed", "probe", name, "error", err)
		}
	}

	if failed > 0 {
		s.infra.Logger.Warn("subsystems started with failing probes", "failed", failed)
		return
	}
	s.infra.Logger.Info("all subsystems ready")
}
