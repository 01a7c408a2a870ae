package request

type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type BannerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	ImageURL string `json:"image_url" validate:"required,url"`
}

type PromoRequest struct {
	Title              string `json:"title" validate:"required,min=3,max=200"`
	Description        string `json:"description"`
	ImageURL           string `json:"image_url" validate:"omitempty,url"`
	TermsCondition     string `json:"terms_condition"`
	PromoCode          string `json:"promo_code" validate:"required,min=3,max=50"`
	PromoDiscountPrice int64  `json:"promo_discount_price" validate:"gte=0"`
	MinimumClaimPrice  int64  `json:"minimum_claim_price" validate:"gte=0"`
}

type ActivityRequest struct {
	CategoryID    string   `json:"category_id" validate:"required,uuid"`
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   string   `json:"description"`
	ImageURLs     []string `json:"image_urls" validate:"omitempty,dive,url"`
	Price         int64    `json:"price" validate:"gte=0"`
	PriceDiscount *int64   `json:"price_discount,omitempty" validate:"omitempty,gte=0"`
	Facilities    string   `json:"facilities"`
	Address       string   `json:"address"`
	Province      string   `json:"province"`
	City          string   `json:"city"`
}

// ActivityListRequest is read from the query string of GET /activities.
type ActivityListRequest struct {
	PaginatedRequest
	CategoryID string `json:"category_id" validate:"omitempty,uuid"`
	Search     string `json:"search" validate:"max=100"`
}
