package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/edh-companion/internal/api/handlers"
	"github.com/mtgkit/edh-companion/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		pairingHandler := handlers.NewPairingHandler(s.catalog)
		suggestionsHandler := handlers.NewSuggestionsHandler(s.suggestions)

		r.Route("/commanders", func(r chi.Router) {
			r.Get("/", pairingHandler.ListCommanders)
			r.Get("/{name}/partner-suggestions", suggestionsHandler.GetPartnerSuggestions)
			r.Get("/{name}/pairing/{partner}", pairingHandler.GetPairing)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "edh-companion-api",
	})
}
