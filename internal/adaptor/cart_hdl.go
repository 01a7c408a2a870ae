package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/v1/carts
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}
	utils.ResponseSuccess(w, "success", cart)
}

// AddItem handles POST /api/v1/carts
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.AddCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}
	utils.ResponseCreated(w, "Added to cart", item)
}

// UpdateQuantity handles PUT /api/v1/carts/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cart")
		return
	}
	utils.ResponseSuccess(w, "Cart updated", item)
}

// RemoveItem handles DELETE /api/v1/carts/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "remove from cart")
		return
	}
	utils.ResponseSuccess(w, "Removed from cart", nil)
}

// GetWishlist handles GET /api/v1/wishlist
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get wishlist")
		return
	}
	utils.ResponseSuccess(w, "success", items)
}

// AddWishlist handles POST /api/v1/wishlist
func (h *CartHandler) AddWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.WishlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.AddWishlist(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "add to wishlist")
		return
	}
	utils.ResponseCreated(w, "Added to wishlist", nil)
}

// RemoveWishlist handles DELETE /api/v1/wishlist/{activity_id}
func (h *CartHandler) RemoveWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveWishlist(r.Context(), userID, chi.URLParam(r, "activity_id")); err != nil {
		handleServiceError(w, h.log, err, "remove from wishlist")
		return
	}
	utils.ResponseSuccess(w, "Removed from wishlist", nil)
}
