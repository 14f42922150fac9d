package quotes

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers quotation routes. Quote ids contain slashes, so the
// id-scoped routes use a wildcard segment.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/id/*", h.Get)
		r.Post("/discount/*", h.ApplyDiscount)
		r.Delete("/id/*", h.Delete)
	})
}
