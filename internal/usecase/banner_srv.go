package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BannerService interface {
	GetAll(ctx context.Context) ([]response.BannerResponse, error)
	GetByID(ctx context.Context, id string) (*response.BannerResponse, error)
	Create(ctx context.Context, req *request.BannerRequest) (*response.BannerResponse, error)
	Update(ctx context.Context, id string, req *request.BannerRequest) (*response.BannerResponse, error)
	Delete(ctx context.Context, id string) error
}

type bannerService struct {
	repo  repository.BannerRepository
	cache cache.Cache
	log   *zap.Logger
}

func NewBannerService(repo repository.BannerRepository, c cache.Cache, log *zap.Logger) BannerService {
	return &bannerService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "banner")),
	}
}

func (s *bannerService) GetAll(ctx context.Context) ([]response.BannerResponse, error) {
	return cached(ctx, s.cache, cache.KeyBanners, func(ctx context.Context) ([]response.BannerResponse, error) {
		banners, err := s.repo.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to get banners", zap.Error(err))
			return nil, fmt.Errorf("failed to get banners")
		}

		data := make([]response.BannerResponse, 0, len(banners))
		for _, b := range banners {
			data = append(data, response.BannerToResponse(b))
		}
		return data, nil
	})
}

func (s *bannerService) find(ctx context.Context, id string) (*entity.Banner, error) {
	bannerID, err := parseID("banner", id)
	if err != nil {
		return nil, err
	}

	banner, err := s.repo.FindByID(ctx, bannerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get banner")
	}
	if banner == nil {
		return nil, fmt.Errorf("banner not found")
	}

	return banner, nil
}

func (s *bannerService) GetByID(ctx context.Context, id string) (*response.BannerResponse, error) {
	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) Create(ctx context.Context, req *request.BannerRequest) (*response.BannerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	banner := &entity.Banner{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     strings.TrimSpace(req.Name),
		ImageURL: req.ImageURL,
	}

	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner")
	}
	s.cache.Delete(ctx, cache.KeyBanners)

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) Update(ctx context.Context, id string, req *request.BannerRequest) (*response.BannerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Name = strings.TrimSpace(req.Name)
	banner.ImageURL = req.ImageURL
	banner.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to update banner")
	}
	s.cache.Delete(ctx, cache.KeyBanners)

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	banner, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, banner.ID); err != nil {
		return fmt.Errorf("failed to delete banner")
	}
	s.cache.Delete(ctx, cache.KeyBanners)

	return nil
}
