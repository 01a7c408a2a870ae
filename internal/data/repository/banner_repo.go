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

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error)
	FindAll(ctx context.Context) ([]*entity.Banner, error)
	Update(ctx context.Context, banner *entity.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bannerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBannerRepository(db database.PgxIface, log *zap.Logger) BannerRepository {
	return &bannerRepository{
		db:  db,
		log: log.With(zap.String("repository", "banner")),
	}
}

func (r *bannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	query := `
		INSERT INTO banners (id, name, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, banner.ID, banner.Name, banner.ImageURL, banner.CreatedAt, banner.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create banner", zap.Error(err), zap.String("name", banner.Name))
		return fmt.Errorf("create banner %s: %w", banner.Name, err)
	}

	return nil
}

func (r *bannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error) {
	query := `
		SELECT id, name, image_url, created_at, updated_at, deleted_at
		FROM banners
		WHERE id = $1 AND deleted_at IS NULL
	`

	var b entity.Banner
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find banner by ID", zap.Error(err), zap.String("banner_id", id.String()))
		return nil, fmt.Errorf("find banner by ID %s: %w", id.String(), err)
	}

	return &b, nil
}

func (r *bannerRepository) FindAll(ctx context.Context) ([]*entity.Banner, error) {
	query := `
		SELECT id, name, image_url, created_at, updated_at, deleted_at
		FROM banners
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all banners", zap.Error(err))
		return nil, fmt.Errorf("find all banners: %w", err)
	}
	defer rows.Close()

	var banners []*entity.Banner
	for rows.Next() {
		var b entity.Banner
		if err := rows.Scan(&b.ID, &b.Name, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt); err != nil {
			r.log.Error("Failed to scan banner row", zap.Error(err))
			return nil, fmt.Errorf("scan banner row: %w", err)
		}
		banners = append(banners, &b)
	}

	return banners, rows.Err()
}

func (r *bannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	query := `
		UPDATE banners
		SET name = $2, image_url = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, banner.ID, banner.Name, banner.ImageURL, banner.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update banner", zap.Error(err), zap.String("banner_id", banner.ID.String()))
		return fmt.Errorf("update banner %s: %w", banner.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("banner %s not found", banner.ID.String())
	}

	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE banners SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete banner", zap.Error(err), zap.String("banner_id", id.String()))
		return fmt.Errorf("delete banner %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("banner %s not found", id.String())
	}

	return nil
}
