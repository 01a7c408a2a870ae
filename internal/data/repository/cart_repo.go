package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	// Add inserts a cart line or increases the quantity of an existing one
	Add(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.CartItem, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

// cart lines are always read together with their activity
const cartSelect = `
		SELECT c.id, c.user_id, c.activity_id, c.quantity, c.created_at, c.updated_at,
		       a.id, a.category_id, a.title, a.description, a.image_urls, a.price, a.price_discount,
		       a.rating, a.total_reviews, a.facilities, a.address, a.province, a.city,
		       a.created_at, a.updated_at, a.deleted_at
		FROM carts c
		INNER JOIN activities a ON a.id = c.activity_id AND a.deleted_at IS NULL
`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	var a entity.Activity
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ActivityID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
		&a.ID,
		&a.CategoryID,
		&a.Title,
		&a.Description,
		&a.ImageURLs,
		&a.Price,
		&a.PriceDiscount,
		&a.Rating,
		&a.TotalReviews,
		&a.Facilities,
		&a.Address,
		&a.Province,
		&a.City,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Activity = &a
	return &item, nil
}

func (r *cartRepository) Add(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	query := `
		INSERT INTO carts (id, user_id, activity_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, activity_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.ActivityID,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("activity_id", item.ActivityID.String()),
		)
		return nil, fmt.Errorf("add activity %s to cart: %w", item.ActivityID.String(), err)
	}

	return r.FindByID(ctx, item.UserID, id)
}

func (r *cartRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.CartItem, error) {
	query := cartSelect + ` WHERE c.id = $1 AND c.user_id = $2`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item", zap.Error(err), zap.String("cart_id", id.String()))
		return nil, fmt.Errorf("find cart item %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	return r.query(ctx, cartSelect+` WHERE c.user_id = $1 ORDER BY c.created_at DESC`, userID)
}

// FindByIDs returns only the lines among ids that belong to userID
func (r *cartRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error) {
	return r.query(ctx, cartSelect+` WHERE c.user_id = $1 AND c.id = ANY($2) ORDER BY c.created_at`, userID, ids)
}

func (r *cartRepository) query(ctx context.Context, query string, args ...any) ([]*entity.CartItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query cart", zap.Error(err))
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.log.Error("Failed to scan cart row", zap.Error(err))
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, id uuid.UUID, quantity int) error {
	query := `UPDATE carts SET quantity = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID, quantity)
	if err != nil {
		r.log.Error("Failed to update cart quantity", zap.Error(err), zap.String("cart_id", id.String()))
		return fmt.Errorf("update cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", id.String())
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM carts WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete cart item", zap.Error(err), zap.String("cart_id", id.String()))
		return fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", id.String())
	}

	return nil
}
