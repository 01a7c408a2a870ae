package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, h *adaptor.ReviewHandler, g guards) {
	// GET /activities/{id}/reviews is public
	r.Get("/activities/{id}/reviews", h.GetActivityReviews)

	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/reviews", h.CreateReview)
		r.Get("/reviews", h.GetMyReviews)
		r.Put("/reviews/{id}", h.UpdateReview)
		r.Delete("/reviews/{id}", h.DeleteReview)
	})
}
