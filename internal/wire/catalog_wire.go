package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, h *adaptor.CatalogHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/categories", h.GetCategories)
	r.Get("/categories/{id}", h.GetCategory)
	r.Get("/activities", h.GetActivities)
	r.Get("/activities/{id}", h.GetActivity)
	r.Get("/banners", h.GetBanners)
	r.Get("/banners/{id}", h.GetBanner)
	r.Get("/promos", h.GetPromos)
	r.Get("/promos/{id}", h.GetPromo)
	r.Get("/payment-methods", h.GetPaymentMethods)

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin", func(r chi.Router) {
		r.Use(g.auth, g.admin)

		r.Post("/categories", h.CreateCategory)
		r.Put("/categories/{id}", h.UpdateCategory)
		r.Delete("/categories/{id}", h.DeleteCategory)

		r.Post("/activities", h.CreateActivity)
		r.Put("/activities/{id}", h.UpdateActivity)
		r.Delete("/activities/{id}", h.DeleteActivity)

		r.Post("/banners", h.CreateBanner)
		r.Put("/banners/{id}", h.UpdateBanner)
		r.Delete("/banners/{id}", h.DeleteBanner)

		r.Post("/promos", h.CreatePromo)
		r.Put("/promos/{id}", h.UpdatePromo)
		r.Delete("/promos/{id}", h.DeletePromo)
	})
}
