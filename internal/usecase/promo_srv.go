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

type PromoService interface {
	GetAll(ctx context.Context) ([]response.PromoResponse, error)
	GetByID(ctx context.Context, id string) (*response.PromoResponse, error)
	Create(ctx context.Context, req *request.PromoRequest) (*response.PromoResponse, error)
	Update(ctx context.Context, id string, req *request.PromoRequest) (*response.PromoResponse, error)
	Delete(ctx context.Context, id string) error
}

type promoService struct {
	repo  repository.PromoRepository
	cache cache.Cache
	log   *zap.Logger
}

func NewPromoService(repo repository.PromoRepository, c cache.Cache, log *zap.Logger) PromoService {
	return &promoService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "promo")),
	}
}

func (s *promoService) GetAll(ctx context.Context) ([]response.PromoResponse, error) {
	return cached(ctx, s.cache, cache.KeyPromos, func(ctx context.Context) ([]response.PromoResponse, error) {
		promos, err := s.repo.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to get promos", zap.Error(err))
			return nil, fmt.Errorf("failed to get promos")
		}

		data := make([]response.PromoResponse, 0, len(promos))
		for _, p := range promos {
			data = append(data, response.PromoToResponse(p))
		}
		return data, nil
	})
}

func (s *promoService) find(ctx context.Context, id string) (*entity.Promo, error) {
	promoID, err := parseID("promo", id)
	if err != nil {
		return nil, err
	}

	promo, err := s.repo.FindByID(ctx, promoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promo")
	}
	if promo == nil {
		return nil, fmt.Errorf("promo not found")
	}

	return promo, nil
}

func (s *promoService) GetByID(ctx context.Context, id string) (*response.PromoResponse, error) {
	promo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.PromoToResponse(promo)
	return &resp, nil
}

// checkCode rejects a promo code already used by another promo
func (s *promoService) checkCode(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to check promo code")
	}
	if existing != nil && existing.ID != self {
		return fmt.Errorf("promo code %s already exists", code)
	}
	return nil
}

func (s *promoService) apply(promo *entity.Promo, req *request.PromoRequest) {
	promo.Title = strings.TrimSpace(req.Title)
	promo.Description = req.Description
	promo.ImageURL = req.ImageURL
	promo.TermsCondition = req.TermsCondition
	promo.PromoCode = strings.ToUpper(strings.TrimSpace(req.PromoCode))
	promo.PromoDiscountPrice = req.PromoDiscountPrice
	promo.MinimumClaimPrice = req.MinimumClaimPrice
}

func (s *promoService) Create(ctx context.Context, req *request.PromoRequest) (*response.PromoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	promo := &entity.Promo{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}
	s.apply(promo, req)

	if err := s.checkCode(ctx, promo.PromoCode, promo.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to create promo")
	}
	s.cache.Delete(ctx, cache.KeyPromos)

	s.log.Info("Promo created", zap.String("promo_code", promo.PromoCode))

	resp := response.PromoToResponse(promo)
	return &resp, nil
}

func (s *promoService) Update(ctx context.Context, id string, req *request.PromoRequest) (*response.PromoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	promo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(promo, req)
	promo.UpdatedAt = time.Now()

	if err := s.checkCode(ctx, promo.PromoCode, promo.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to update promo")
	}
	s.cache.Delete(ctx, cache.KeyPromos)

	resp := response.PromoToResponse(promo)
	return &resp, nil
}

func (s *promoService) Delete(ctx context.Context, id string) error {
	promo, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, promo.ID); err != nil {
		return fmt.Errorf("failed to delete promo")
	}
	s.cache.Delete(ctx, cache.KeyPromos)

	return nil
}
