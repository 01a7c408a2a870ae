package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (*response.CartResponse, error)
	AddItem(ctx context.Context, userID string, req *request.AddCartRequest) (*response.CartItemResponse, error)
	UpdateQuantity(ctx context.Context, userID, cartID string, req *request.UpdateCartRequest) (*response.CartItemResponse, error)
	RemoveItem(ctx context.Context, userID, cartID string) error

	GetWishlist(ctx context.Context, userID string) ([]response.WishlistItemResponse, error)
	AddWishlist(ctx context.Context, userID string, req *request.WishlistRequest) error
	RemoveWishlist(ctx context.Context, userID, activityID string) error
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*response.CartResponse, error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Cart.FindByUserID(ctx, uid)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get cart")
	}

	resp := response.CartToResponse(items)
	return &resp, nil
}

func (s *cartService) activity(ctx context.Context, activityID string) (*entity.Activity, error) {
	aid, err := parseID("activity", activityID)
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

	return activity, nil
}

func (s *cartService) AddItem(ctx context.Context, userID string, req *request.AddCartRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	activity, err := s.activity(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item, err := s.repo.Cart.Add(ctx, &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       uid,
		ActivityID:   activity.ID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart")
	}
	if item == nil {
		return nil, fmt.Errorf("cart item not found")
	}

	s.log.Info("Added to cart",
		zap.String("user_id", userID),
		zap.String("activity_id", req.ActivityID),
		zap.Int("quantity", item.Quantity),
	)

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, cartID string, req *request.UpdateCartRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID("cart", cartID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, uid, cid, req.Quantity); err != nil {
		return nil, err
	}

	item, err := s.repo.Cart.FindByID(ctx, uid, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item")
	}
	if item == nil {
		return nil, fmt.Errorf("cart item not found")
	}

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, cartID string) error {
	uid, err := parseID("user", userID)
	if err != nil {
		return err
	}
	cid, err := parseID("cart", cartID)
	if err != nil {
		return err
	}

	return s.repo.Cart.Delete(ctx, uid, cid)
}

func (s *cartService) GetWishlist(ctx context.Context, userID string) ([]response.WishlistItemResponse, error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Wishlist.FindByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist")
	}

	data := make([]response.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, response.WishlistItemToResponse(item))
	}

	return data, nil
}

func (s *cartService) AddWishlist(ctx context.Context, userID string, req *request.WishlistRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uid, err := parseID("user", userID)
	if err != nil {
		return err
	}
	activity, err := s.activity(ctx, req.ActivityID)
	if err != nil {
		return err
	}

	return s.repo.Wishlist.Add(ctx, &entity.WishlistItem{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uid,
		ActivityID: activity.ID,
	})
}

func (s *cartService) RemoveWishlist(ctx context.Context, userID, activityID string) error {
	uid, err := parseID("user", userID)
	if err != nil {
		return err
	}
	aid, err := parseID("activity", activityID)
	if err != nil {
		return err
	}

	return s.repo.Wishlist.Remove(ctx, uid, aid)
}
