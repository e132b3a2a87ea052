package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/canopy/internal/api"
	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/infrastructure"
	"github.com/JaimeStill/canopy/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]any{"status": "ok"})
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, map[string]any{"status": "not ready"})
			return
		}

		if failures := infra.Lifecycle.Check(r.Context()); len(failures) > 0 {
			checks := make(map[string]string, len(failures))
			for name, err := range failures {
				checks[name] = err.Error()
			}
			writeStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"checks": checks,
			})
			return
		}

		writeStatus(w, http.StatusOK, map[string]any{"status": "ready"})
	}))

	if infra.Metrics.Enabled() {
		router.HandleNative("GET "+infra.Metrics.Path(), infra.Metrics.Handler())
	}

	return router
}

func writeStatus(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
