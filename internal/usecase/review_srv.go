package usecase

import (
	"context"
	"fmt"
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

type ReviewService interface {
	Create(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetByActivity(ctx context.Context, activityID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetMine(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	Update(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, userID, role, reviewID string) error
}

type reviewService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewReviewService(repo *repository.Repository, c cache.Cache, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) Create(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	aid, err := parseID("activity", req.ActivityID)
	if err != nil {
		return nil, err
	}

	activity, err := s.repo.Activity.FindByID(ctx, aid)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity")
	}
	if activity == nil {
		return nil, fmt.Errorf("activity not found")
	}

	purchased, err := s.repo.Transaction.HasSuccessfulPurchase(ctx, uid, aid)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase")
	}
	if !purchased {
		return nil, fmt.Errorf("forbidden: only a completed purchase can be reviewed")
	}

	existing, err := s.repo.Review.FindByUserAndActivity(ctx, uid, aid)
	if err != nil {
		return nil, fmt.Errorf("failed to check review")
	}
	if existing != nil {
		return nil, fmt.Errorf("activity already reviewed")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uid,
		ActivityID: aid,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review")
	}
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("activity_id", req.ActivityID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetByActivity(ctx context.Context, activityID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	aid, err := parseID("activity", activityID)
	if err != nil {
		return nil, err
	}
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	reviews, err := s.repo.Review.FindByActivityID(ctx, aid, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews")
	}

	total, err := s.repo.Review.CountByActivityID(ctx, aid)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews")
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, response.ReviewToResponse(r))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *reviewService) GetMine(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews")
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, response.ReviewToResponse(r))
	}

	return data, nil
}

func (s *reviewService) find(ctx context.Context, reviewID string) (*entity.Review, error) {
	rid, err := parseID("review", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("failed to get review")
	}
	if review == nil {
		return nil, fmt.Errorf("review not found")
	}

	return review, nil
}

func (s *reviewService) Update(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID.String() != userID {
		return nil, fmt.Errorf("forbidden: review belongs to another user")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review")
	}
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, role, reviewID string) error {
	review, err := s.find(ctx, reviewID)
	if err != nil {
		return err
	}
	if role != string(entity.RoleAdmin) && review.UserID.String() != userID {
		return fmt.Errorf("forbidden: review belongs to another user")
	}

	if err := s.repo.Review.Delete(ctx, review); err != nil {
		return fmt.Errorf("failed to delete review")
	}
	s.cache.DeletePrefix(ctx, cache.KeyActivitiesPrefix)

	return nil
}
