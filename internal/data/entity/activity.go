package entity

import "github.com/google/uuid"

type Activity struct {
	Base
	CategoryID    uuid.UUID `db:"category_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	ImageURLs     []string  `db:"image_urls"`
	Price         int64     `db:"price"`
	PriceDiscount *int64    `db:"price_discount"`
	Rating        float64   `db:"rating"`
	TotalReviews  int       `db:"total_reviews"`
	Facilities    string    `db:"facilities"`
	Address       string    `db:"address"`
	Province      string    `db:"province"`
	City          string    `db:"city"`
}

// EffectivePrice is the unit price charged at checkout.
func (a *Activity) EffectivePrice() int64 {
	if a.PriceDiscount != nil && *a.PriceDiscount < a.Price {
		return *a.PriceDiscount
	}
	return a.Price
}
