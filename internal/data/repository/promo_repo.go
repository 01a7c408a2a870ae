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

type PromoRepository interface {
	Create(ctx context.Context, promo *entity.Promo) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Promo, error)
	FindByCode(ctx context.Context, code string) (*entity.Promo, error)
	FindAll(ctx context.Context) ([]*entity.Promo, error)
	Update(ctx context.Context, promo *entity.Promo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type promoRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromoRepository(db database.PgxIface, log *zap.Logger) PromoRepository {
	return &promoRepository{
		db:  db,
		log: log.With(zap.String("repository", "promo")),
	}
}

const promoColumns = `id, title, description, image_url, terms_condition, promo_code,
		       promo_discount_price, minimum_claim_price, created_at, updated_at, deleted_at`

func scanPromo(row pgx.Row) (*entity.Promo, error) {
	var p entity.Promo
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.ImageURL,
		&p.TermsCondition,
		&p.PromoCode,
		&p.PromoDiscountPrice,
		&p.MinimumClaimPrice,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promoRepository) Create(ctx context.Context, promo *entity.Promo) error {
	query := `
		INSERT INTO promos (id, title, description, image_url, terms_condition, promo_code,
		                    promo_discount_price, minimum_claim_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Title,
		promo.Description,
		promo.ImageURL,
		promo.TermsCondition,
		promo.PromoCode,
		promo.PromoDiscountPrice,
		promo.MinimumClaimPrice,
		promo.CreatedAt,
		promo.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create promo", zap.Error(err), zap.String("promo_code", promo.PromoCode))
		return fmt.Errorf("create promo %s: %w", promo.PromoCode, err)
	}

	return nil
}

func (r *promoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promo, error) {
	query := `SELECT ` + promoColumns + ` FROM promos WHERE id = $1 AND deleted_at IS NULL`

	promo, err := scanPromo(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promo by ID", zap.Error(err), zap.String("promo_id", id.String()))
		return nil, fmt.Errorf("find promo by ID %s: %w", id.String(), err)
	}

	return promo, nil
}

func (r *promoRepository) FindByCode(ctx context.Context, code string) (*entity.Promo, error) {
	query := `SELECT ` + promoColumns + ` FROM promos WHERE promo_code = $1 AND deleted_at IS NULL`

	promo, err := scanPromo(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promo by code", zap.Error(err), zap.String("promo_code", code))
		return nil, fmt.Errorf("find promo by code %s: %w", code, err)
	}

	return promo, nil
}

func (r *promoRepository) FindAll(ctx context.Context) ([]*entity.Promo, error) {
	query := `SELECT ` + promoColumns + ` FROM promos WHERE deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all promos", zap.Error(err))
		return nil, fmt.Errorf("find all promos: %w", err)
	}
	defer rows.Close()

	var promos []*entity.Promo
	for rows.Next() {
		promo, err := scanPromo(rows)
		if err != nil {
			r.log.Error("Failed to scan promo row", zap.Error(err))
			return nil, fmt.Errorf("scan promo row: %w", err)
		}
		promos = append(promos, promo)
	}

	return promos, rows.Err()
}

func (r *promoRepository) Update(ctx context.Context, promo *entity.Promo) error {
	query := `
		UPDATE promos
		SET title = $2, description = $3, image_url = $4, terms_condition = $5,
		    promo_code = $6, promo_discount_price = $7, minimum_claim_price = $8,
		    updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Title,
		promo.Description,
		promo.ImageURL,
		promo.TermsCondition,
		promo.PromoCode,
		promo.PromoDiscountPrice,
		promo.MinimumClaimPrice,
		promo.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update promo", zap.Error(err), zap.String("promo_id", promo.ID.String()))
		return fmt.Errorf("update promo %s: %w", promo.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promo %s not found", promo.ID.String())
	}

	return nil
}

func (r *promoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE promos SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete promo", zap.Error(err), zap.String("promo_id", id.String()))
		return fmt.Errorf("delete promo %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promo %s not found", id.String())
	}

	return nil
}
