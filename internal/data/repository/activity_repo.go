package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ActivityFilter narrows the public activity listing.
type ActivityFilter struct {
	CategoryID *uuid.UUID
	Search     string
	Limit      int
	Offset     int
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	FindAll(ctx context.Context, filter ActivityFilter) ([]*entity.Activity, error)
	Count(ctx context.Context, filter ActivityFilter) (int64, error)
	Update(ctx context.Context, activity *entity.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActivityRepository(db database.PgxIface, log *zap.Logger) ActivityRepository {
	return &activityRepository{
		db:  db,
		log: log.With(zap.String("repository", "activity")),
	}
}

const activityColumns = `id, category_id, title, description, image_urls, price, price_discount,
		       rating, total_reviews, facilities, address, province, city,
		       created_at, updated_at, deleted_at`

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var a entity.Activity
	err := row.Scan(
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
	return &a, nil
}

// where builds the shared WHERE clause of FindAll and Count
func (f ActivityFilter) where() (string, []any) {
	clauses := []string{"deleted_at IS NULL"}
	var args []any

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR city ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, category_id, title, description, image_urls, price,
		                        price_discount, facilities, address, province, city,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		activity.ID,
		activity.CategoryID,
		activity.Title,
		activity.Description,
		activity.ImageURLs,
		activity.Price,
		activity.PriceDiscount,
		activity.Facilities,
		activity.Address,
		activity.Province,
		activity.City,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create activity",
			zap.Error(err),
			zap.String("title", activity.Title),
		)
		return fmt.Errorf("create activity %s: %w", activity.Title, err)
	}

	return nil
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1 AND deleted_at IS NULL`

	activity, err := scanActivity(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find activity by ID",
			zap.Error(err),
			zap.String("activity_id", id.String()),
		)
		return nil, fmt.Errorf("find activity by ID %s: %w", id.String(), err)
	}

	return activity, nil
}

func (r *activityRepository) FindAll(ctx context.Context, filter ActivityFilter) ([]*entity.Activity, error) {
	where, args := filter.where()
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM activities
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, activityColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find activities",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			r.log.Error("Failed to scan activity row", zap.Error(err))
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}

	return activities, nil
}

func (r *activityRepository) Count(ctx context.Context, filter ActivityFilter) (int64, error) {
	where, args := filter.where()
	query := `SELECT COUNT(*) FROM activities WHERE ` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count activities", zap.Error(err))
		return 0, fmt.Errorf("count activities: %w", err)
	}

	return count, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	query := `
		UPDATE activities
		SET category_id = $2, title = $3, description = $4, image_urls = $5,
		    price = $6, price_discount = $7, facilities = $8, address = $9,
		    province = $10, city = $11, updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		activity.ID,
		activity.CategoryID,
		activity.Title,
		activity.Description,
		activity.ImageURLs,
		activity.Price,
		activity.PriceDiscount,
		activity.Facilities,
		activity.Address,
		activity.Province,
		activity.City,
		activity.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update activity",
			zap.Error(err),
			zap.String("activity_id", activity.ID.String()),
		)
		return fmt.Errorf("update activity %s: %w", activity.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("activity %s not found", activity.ID.String())
	}

	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE activities SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete activity", zap.Error(err), zap.String("activity_id", id.String()))
		return fmt.Errorf("delete activity %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("activity %s not found", id.String())
	}

	r.log.Info("Activity deleted", zap.String("activity_id", id.String()))
	return nil
}
