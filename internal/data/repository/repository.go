package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Category      CategoryRepository
	Activity      ActivityRepository
	Banner        BannerRepository
	Promo         PromoRepository
	PaymentMethod PaymentMethodRepository
	Cart          CartRepository
	Wishlist      WishlistRepository
	Transaction   TransactionRepository
	Review        ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Category:      NewCategoryRepository(db, log),
		Activity:      NewActivityRepository(db, log),
		Banner:        NewBannerRepository(db, log),
		Promo:         NewPromoRepository(db, log),
		PaymentMethod: NewPaymentMethodRepository(db, log),
		Cart:          NewCartRepository(db, log),
		Wishlist:      NewWishlistRepository(db, log),
		Transaction:   NewTransactionRepository(db, log),
		Review:        NewReviewRepository(db, log),
	}
}
