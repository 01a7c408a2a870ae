package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error)
	Remove(ctx context.Context, userID, activityID uuid.UUID) error
}

type wishlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWishlistRepository(db database.PgxIface, log *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "wishlist")),
	}
}

// Add is idempotent, adding the same activity twice keeps one entry
func (r *wishlistRepository) Add(ctx context.Context, item *entity.WishlistItem) error {
	query := `
		INSERT INTO wishlists (id, user_id, activity_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, activity_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, item.ID, item.UserID, item.ActivityID, item.CreatedAt)
	if err != nil {
		r.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("activity_id", item.ActivityID.String()),
		)
		return fmt.Errorf("add activity %s to wishlist: %w", item.ActivityID.String(), err)
	}

	return nil
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.activity_id, w.created_at,
		       a.id, a.category_id, a.title, a.image_urls, a.price, a.price_discount,
		       a.rating, a.total_reviews, a.province, a.city
		FROM wishlists w
		INNER JOIN activities a ON a.id = w.activity_id AND a.deleted_at IS NULL
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find wishlist", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find wishlist of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.WishlistItem
	for rows.Next() {
		var item entity.WishlistItem
		var a entity.Activity
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ActivityID,
			&item.CreatedAt,
			&a.ID,
			&a.CategoryID,
			&a.Title,
			&a.ImageURLs,
			&a.Price,
			&a.PriceDiscount,
			&a.Rating,
			&a.TotalReviews,
			&a.Province,
			&a.City,
		)
		if err != nil {
			r.log.Error("Failed to scan wishlist row", zap.Error(err))
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		item.Activity = &a
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, activityID uuid.UUID) error {
	query := `DELETE FROM wishlists WHERE user_id = $1 AND activity_id = $2`

	result, err := r.db.Exec(ctx, query, userID, activityID)
	if err != nil {
		r.log.Error("Failed to remove wishlist item", zap.Error(err), zap.String("activity_id", activityID.String()))
		return fmt.Errorf("remove activity %s from wishlist: %w", activityID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item for activity %s not found", activityID.String())
	}

	return nil
}
