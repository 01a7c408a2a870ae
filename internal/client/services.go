package client

// Services groups one domain service per API resource over a shared Client.
type Services struct {
	Auth           *Auth
	Users          *Users
	Activities     *Activities
	Categories     *Categories
	Banners        *Banners
	Promos         *Promos
	Cart           *Cart
	Wishlist       *Wishlist
	Transactions   *Transactions
	Reviews        *Reviews
	PaymentMethods *PaymentMethods
	Uploads        *Uploads
}

func NewServices(c *Client) *Services {
	return &Services{
		Auth:           NewAuth(c),
		Users:          NewUsers(c),
		Activities:     NewActivities(c),
		Categories:     NewCategories(c),
		Banners:        NewBanners(c),
		Promos:         NewPromos(c),
		Cart:           NewCart(c),
		Wishlist:       NewWishlist(c),
		Transactions:   NewTransactions(c),
		Reviews:        NewReviews(c),
		PaymentMethods: NewPaymentMethods(c),
		Uploads:        NewUploads(c),
	}
}
