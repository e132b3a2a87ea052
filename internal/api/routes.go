package api

import (
	"net/http"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	explorerHandler := explorer.NewHandler(
		domain.Explorer,
		domain.Sessions,
		domain.Sessions,
		runtime.Logger,
	)

	documentsHandler := documents.NewHandler(
		domain.Documents,
		runtime.Logger,
		runtime.Pagination,
		runtime.MaxUploadSize,
	)

	groups := []routes.Group{
		documentsHandler.Routes(),
		domain.Representations.Handler().Routes(),
		domain.Sessions.Handler().Routes(),
		explorerHandler.Routes(),
	}

	routes.Register(mux, groups...)

	for _, g := range groups {
		runtime.Logger.Debug("routes registered", "prefix", g.Prefix, "patterns", g.Patterns())
	}
}
