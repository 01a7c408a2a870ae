package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/user", userHandler.GetProfile)
		r.Put("/user", userHandler.UpdateProfile)

		// ==================== ADMIN ROUTES ====================
		r.With(g.admin).Get("/admin/users", userHandler.GetAllUsers)
		r.With(g.admin).Put("/admin/users/{id}/role", userHandler.UpdateRole)
	})
}
