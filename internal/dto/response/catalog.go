package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type BannerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type PromoResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ImageURL           string    `json:"image_url"`
	TermsCondition     string    `json:"terms_condition"`
	PromoCode          string    `json:"promo_code"`
	PromoDiscountPrice int64     `json:"promo_discount_price"`
	MinimumClaimPrice  int64     `json:"minimum_claim_price"`
	CreatedAt          time.Time `json:"created_at"`
}

type ActivityResponse struct {
	ID             string    `json:"id"`
	CategoryID     string    `json:"category_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ImageURLs      []string  `json:"image_urls"`
	Price          int64     `json:"price"`
	PriceDiscount  *int64    `json:"price_discount,omitempty"`
	EffectivePrice int64     `json:"effective_price"`
	Rating         float64   `json:"rating"`
	TotalReviews   int       `json:"total_reviews"`
	Facilities     string    `json:"facilities,omitempty"`
	Address        string    `json:"address,omitempty"`
	Province       string    `json:"province"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
}

type PaymentMethodResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	VirtualAccountNumber string `json:"virtual_account_number"`
	VirtualAccountName   string `json:"virtual_account_name"`
	ImageURL             string `json:"image_url"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
	}
}

func BannerToResponse(b *entity.Banner) BannerResponse {
	return BannerResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		ImageURL:  b.ImageURL,
		CreatedAt: b.CreatedAt,
	}
}

func PromoToResponse(p *entity.Promo) PromoResponse {
	return PromoResponse{
		ID:                 p.ID.String(),
		Title:              p.Title,
		Description:        p.Description,
		ImageURL:           p.ImageURL,
		TermsCondition:     p.TermsCondition,
		PromoCode:          p.PromoCode,
		PromoDiscountPrice: p.PromoDiscountPrice,
		MinimumClaimPrice:  p.MinimumClaimPrice,
		CreatedAt:          p.CreatedAt,
	}
}

func ActivityToResponse(a *entity.Activity) ActivityResponse {
	images := a.ImageURLs
	if images == nil {
		images = []string{}
	}

	return ActivityResponse{
		ID:             a.ID.String(),
		CategoryID:     a.CategoryID.String(),
		Title:          a.Title,
		Description:    a.Description,
		ImageURLs:      images,
		Price:          a.Price,
		PriceDiscount:  a.PriceDiscount,
		EffectivePrice: a.EffectivePrice(),
		Rating:         a.Rating,
		TotalReviews:   a.TotalReviews,
		Facilities:     a.Facilities,
		Address:        a.Address,
		Province:       a.Province,
		City:           a.City,
		CreatedAt:      a.CreatedAt,
	}
}

func PaymentMethodToResponse(pm *entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:                   pm.ID.String(),
		Name:                 pm.Name,
		VirtualAccountNumber: pm.VirtualAccountNumber,
		VirtualAccountName:   pm.VirtualAccountName,
		ImageURL:             pm.ImageURL,
	}
}
