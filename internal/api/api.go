// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/infrastructure"
	"github.com/JaimeStill/canopy/pkg/auth"
	"github.com/JaimeStill/canopy/pkg/middleware"
	"github.com/JaimeStill/canopy/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Domain systems with lifecycle hooks are started here.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	if err := domain.Sessions.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("sessions start failed: %w", err)
	}

	authenticator, err := auth.New(runtime.Lifecycle.Context(), &cfg.Auth, runtime.Logger)
	if err != nil {
		return nil, err
	}

	requestMetrics, err := middleware.Metrics("api", runtime.Metrics.Registerer())
	if err != nil {
		return nil, fmt.Errorf("api metrics: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.LimitBody(runtime.MaxRequestBody))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(requestMetrics)
	m.Use(authenticator.Middleware())

	return m, nil
}
