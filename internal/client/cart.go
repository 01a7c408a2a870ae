package client

import (
	"context"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

type Cart struct{ c *Client }

func NewCart(c *Client) *Cart { return &Cart{c: c} }

func (ct *Cart) Get(ctx context.Context) (*response.CartResponse, error) {
	var out response.CartResponse
	if err := ct.c.Do(ctx, http.MethodGet, "/carts", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ct *Cart) Add(ctx context.Context, activityID string, quantity int) (*response.CartItemResponse, error) {
	var out response.CartItemResponse
	req := request.AddCartRequest{ActivityID: activityID, Quantity: quantity}
	if err := ct.c.Do(ctx, http.MethodPost, "/carts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ct *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) (*response.CartItemResponse, error) {
	var out response.CartItemResponse
	req := request.UpdateCartRequest{Quantity: quantity}
	if err := ct.c.Do(ctx, http.MethodPut, "/carts/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ct *Cart) Remove(ctx context.Context, id string) error {
	return ct.c.Do(ctx, http.MethodDelete, "/carts/"+id, nil, nil, nil)
}

type Wishlist struct{ c *Client }

func NewWishlist(c *Client) *Wishlist { return &Wishlist{c: c} }

func (w *Wishlist) All(ctx context.Context) ([]response.WishlistItemResponse, error) {
	var out []response.WishlistItemResponse
	if err := w.c.Do(ctx, http.MethodGet, "/wishlist", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Wishlist) Add(ctx context.Context, activityID string) error {
	return w.c.Do(ctx, http.MethodPost, "/wishlist", nil, request.WishlistRequest{ActivityID: activityID}, nil)
}

func (w *Wishlist) Remove(ctx context.Context, activityID string) error {
	return w.c.Do(ctx, http.MethodDelete, "/wishlist/"+activityID, nil, nil, nil)
}
