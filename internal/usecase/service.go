package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Category    CategoryService
	Activity    ActivityService
	Banner      BannerService
	Promo       PromoService
	Cart        CartService
	Transaction TransactionService
	Review      ReviewService
	Upload      UploadService
}

func NewService(repo *repository.Repository, c cache.Cache, store storage.Storage, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Category:    NewCategoryService(repo.Category, c, log),
		Activity:    NewActivityService(repo, c, log),
		Banner:      NewBannerService(repo.Banner, c, log),
		Promo:       NewPromoService(repo.Promo, c, log),
		Cart:        NewCartService(repo, log),
		Transaction: NewTransactionService(repo, c, config.Listing, log),
		Review:      NewReviewService(repo, c, log),
		Upload:      NewUploadService(store, log),
	}
}
