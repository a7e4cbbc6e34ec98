package book

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers book routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/book", func(r chi.Router) {
		r.Post("/generate", h.GenerateBook)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetBook)
			r.Get("/export", h.ExportBook)
		})
	})
}
