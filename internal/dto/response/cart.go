package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type CartItemResponse struct {
	ID         string           `json:"id"`
	ActivityID string           `json:"activity_id"`
	Quantity   int              `json:"quantity"`
	Subtotal   int64            `json:"subtotal"`
	Activity   ActivityResponse `json:"activity"`
	CreatedAt  time.Time        `json:"created_at"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Total      int64              `json:"total"`
}

type WishlistItemResponse struct {
	ID         string           `json:"id"`
	ActivityID string           `json:"activity_id"`
	Activity   ActivityResponse `json:"activity"`
	CreatedAt  time.Time        `json:"created_at"`
}

func CartItemToResponse(item *entity.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:         item.ID.String(),
		ActivityID: item.ActivityID.String(),
		Quantity:   item.Quantity,
		CreatedAt:  item.CreatedAt,
	}

	if item.Activity != nil {
		resp.Activity = ActivityToResponse(item.Activity)
		resp.Subtotal = item.Activity.EffectivePrice() * int64(item.Quantity)
	}

	return resp
}

func CartToResponse(items []*entity.CartItem) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items))}

	for _, item := range items {
		line := CartItemToResponse(item)
		resp.Items = append(resp.Items, line)
		resp.TotalItems += line.Quantity
		resp.Total += line.Subtotal
	}

	return resp
}

func WishlistItemToResponse(item *entity.WishlistItem) WishlistItemResponse {
	resp := WishlistItemResponse{
		ID:         item.ID.String(),
		ActivityID: item.ActivityID.String(),
		CreatedAt:  item.CreatedAt,
	}
	if item.Activity != nil {
		resp.Activity = ActivityToResponse(item.Activity)
	}
	return resp
}
