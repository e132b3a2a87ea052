package api

import (
	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/infrastructure"
	"github.com/JaimeStill/canopy/internal/sessions"
	"github.com/JaimeStill/canopy/pkg/pagination"
)

// Runtime is the infrastructure as seen by the explorer API: the shared
// systems under an api-scoped logger, plus the limits and policies the
// domain systems and handlers are built with.
type Runtime struct {
	*infrastructure.Infrastructure

	Pagination pagination.Config
	Sessions   sessions.Config

	// MaxUploadSize bounds multipart document uploads, in bytes.
	MaxUploadSize int64
	// MaxRequestBody bounds every non-multipart request body, in bytes.
	MaxRequestBody int64
}

// NewRuntime derives the API runtime from the loaded config. The shared
// infrastructure is not copied; only its logger is rescoped.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Sessions:       cfg.Sessions,
		MaxUploadSize:  cfg.API.MaxUploadSizeBytes(),
		MaxRequestBody: cfg.API.MaxRequestBodyBytes(),
	}
}
