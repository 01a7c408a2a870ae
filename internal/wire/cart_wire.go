package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCart(r chi.Router, h *adaptor.CartHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/carts", h.GetCart)
		r.Post("/carts", h.AddItem)
		r.Put("/carts/{id}", h.UpdateQuantity)
		r.Delete("/carts/{id}", h.RemoveItem)

		r.Get("/wishlist", h.GetWishlist)
		r.Post("/wishlist", h.AddWishlist)
		r.Delete("/wishlist/{activity_id}", h.RemoveWishlist)
	})
}
