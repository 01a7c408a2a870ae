package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTransaction(r chi.Router, h *adaptor.TransactionHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/transactions", h.Create)
		r.Get("/my-transactions", h.GetMine)
		r.Get("/transactions/{id}", h.GetByID)
		r.Put("/transactions/{id}/proof-payment", h.UpdateProof)

		// ==================== ADMIN ROUTES ====================
		r.With(g.admin).Get("/admin/transactions", h.GetAll)
		r.With(g.admin).Put("/admin/transactions/{id}/status", h.UpdateStatus)
	})
}
