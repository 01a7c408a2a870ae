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

type ActivityService interface {
	GetAll(ctx context.Context, req *request.ActivityListRequest) (*response.PaginatedResponse[response.ActivityResponse], error)
	GetByID(ctx context.Context, id string) (*response.ActivityResponse, error)
	Create(ctx context.Context, req *request.ActivityRequest) (*response.ActivityResponse, error)
	Update(ctx context.Context, id string, req *request.ActivityRequest) (*response.ActivityResponse, error)
	Delete(ctx context.Context, id string) error
}

type activityService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewActivityService(repo *repository.Repository, c cache.Cache, log *zap.Logger) ActivityService {
	return &activityService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "activity")),
	}
}

func (s *activityService) GetAll(ctx context.Context, req *request.ActivityListRequest) (*response.PaginatedResponse[response.ActivityResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	filter := repository.ActivityFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}
	if req.CategoryID != "" {
		categoryID, err := parseID("category", req.CategoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &categoryID
	}

	key := cache.ActivitiesKey(req.CategoryID, strings.ToLower(filter.Search), req.Page, req.PerPage)
	return cached(ctx, s.cache, key, func(ctx context.Context) (*response.PaginatedResponse[response.ActivityResponse], error) {
		activities, err := s.repo.Activity.FindAll(ctx, filter)
		if err != nil {
			s.log.Error("Failed to get activities", zap.Error(err))
			return nil, fmt.Errorf("failed to get activities")
		}

		total, err := s.repo.Activity.Count(ctx, filter)
		if err != nil {
			s.log.Error("Failed to count activities", zap.Error(err))
			return nil, fmt.Errorf("failed to count activities")
		}

		data := make([]response.ActivityResponse, 0, len(activities))
		for _, a := range activities {
			data = append(data, response.ActivityToResponse(a))
		}

		return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
	})
}

func (s *activityService) GetByID(ctx context.Context, id string) (*response.ActivityResponse, error) {
	activity, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ActivityToResponse(activity)
	return &resp, nil
}

func (s *activityService) find(ctx context.Context, id string) (*entity.Activity, error) {
	activityID, err := parseID("activity", id)
	if err != nil {
		return nil, err
	}

	activity, err := s.repo.Activity.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity")
	}
	if activity == nil {
		return nil, fmt.Errorf("activity not found")
	}

	return activity, nil
}

// apply copies the request onto activity after checking the category exists
func (s *activityService) apply(ctx context.Context, activity *entity.Activity, req *request.ActivityRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.PriceDiscount != nil && *req.PriceDiscount > req.Price {
		return fmt.Errorf("validation failed: price_discount cannot exceed price")
	}

	categoryID, err := parseID("category", req.CategoryID)
	if err != nil {
		return err
	}
	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to get category")
	}
	if category == nil {
		return fmt.Errorf("category not found")
	}

	activity.CategoryID = categoryID
	activity.Title = strings.TrimSpace(req.Title)
	activity.Description = req.Description
	activity.ImageURLs = req.ImageURLs
	activity.Price = req.Price
	activity.PriceDiscount = req.PriceDiscount
	activity.Facilities = req.Facilities
	activity.Address = req.Address
	activity.Province = req.Province
	activity.City = req.City
	if activity.ImageURLs == nil {
		activity.ImageURLs = []string{}
	}

	return nil
}

func (s *activityService) Create(ctx context.Context, req *request.ActivityRequest) (*response.ActivityResponse, error) {
	now := time.Now()
	activity := &entity.Activity{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}

	if err := s.apply(ctx, activity, req); err != nil {
		return nil, err
	}

	if err := s.repo.Activity.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity")
	}
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	s.log.Info("Activity created", zap.String("activity_id", activity.ID.String()))

	resp := response.ActivityToResponse(activity)
	return &resp, nil
}

func (s *activityService) Update(ctx context.Context, id string, req *request.ActivityRequest) (*response.ActivityResponse, error) {
	activity, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, activity, req); err != nil {
		return nil, err
	}
	activity.UpdatedAt = time.Now()

	if err := s.repo.Activity.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity")
	}
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	resp := response.ActivityToResponse(activity)
	return &resp, nil
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	activity, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Activity.Delete(ctx, activity.ID); err != nil {
		return fmt.Errorf("failed to delete activity")
	}
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	s.log.Info("Activity deleted", zap.String("activity_id", activity.ID.String()))
	return nil
}
