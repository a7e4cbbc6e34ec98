package analytics

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers analytics routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/analytics", func(r chi.Router) {
		r.Post("/track", h.TrackInteraction)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/session/{sessionId}", h.SessionAnalytics)
	})
}
