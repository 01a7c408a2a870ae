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

type CategoryService interface {
	GetAll(ctx context.Context) ([]response.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*response.CategoryResponse, error)
	Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	Update(ctx context.Context, id string, req *request.CategoryRequest) (*response.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.Cache
	log   *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, c cache.Cache, log *zap.Logger) CategoryService {
	return &categoryService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) GetAll(ctx context.Context) ([]response.CategoryResponse, error) {
	return cached(ctx, s.cache, cache.KeyCategories, func(ctx context.Context) ([]response.CategoryResponse, error) {
		categories, err := s.repo.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to get categories", zap.Error(err))
			return nil, fmt.Errorf("failed to get categories")
		}

		data := make([]response.CategoryResponse, 0, len(categories))
		for _, c := range categories {
			data = append(data, response.CategoryToResponse(c))
		}
		return data, nil
	})
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*response.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) find(ctx context.Context, id string) (*entity.Category, error) {
	categoryID, err := parseID("category", id)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category")
	}
	if category == nil {
		return nil, fmt.Errorf("category not found")
	}

	return category, nil
}

func (s *categoryService) Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	category := &entity.Category{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     strings.TrimSpace(req.Name),
		ImageURL: req.ImageURL,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category")
	}
	s.cache.Delete(ctx, cache.KeyCategories)

	s.log.Info("Category created", zap.String("category_id", category.ID.String()))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.ImageURL = req.ImageURL
	category.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category")
	}
	s.cache.Delete(ctx, cache.KeyCategories)

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category")
	}
	s.cache.Delete(ctx, cache.KeyCategories)
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	return nil
}
