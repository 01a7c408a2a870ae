package entity

type Promo struct {
	Base
	Title              string `db:"title"`
	Description        string `db:"description"`
	ImageURL           string `db:"image_url"`
	TermsCondition     string `db:"terms_condition"`
	PromoCode          string `db:"promo_code"`
	PromoDiscountPrice int64  `db:"promo_discount_price"`
	MinimumClaimPrice  int64  `db:"minimum_claim_price"`
}
