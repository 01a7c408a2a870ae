package request

type AddCartRequest struct {
	ActivityID string `json:"activity_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"omitempty,min=1,max=100"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=100"`
}

type WishlistRequest struct {
	ActivityID string `json:"activity_id" validate:"required,uuid"`
}
