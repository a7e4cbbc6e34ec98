package story

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers story routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/story", func(r chi.Router) {
		r.Post("/next-page", h.NextPage)
		r.Get("/check-images", h.CheckImages)
		r.Get("/content/{pageNumber}", h.PageContent)
	})
}
