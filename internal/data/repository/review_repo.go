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

// Every write keeps activities.rating and activities.total_reviews in step
// with the reviews table.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByActivityID(ctx context.Context, activityID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByActivityID(ctx context.Context, activityID uuid.UUID) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, review *entity.Review) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewSelect = `
		SELECT r.id, r.user_id, r.activity_id, r.rating, r.comment, r.created_at, u.name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.ActivityID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// withRating runs write and then recomputes the activity's rating, in one transaction
func (r *reviewRepository) withRating(ctx context.Context, activityID uuid.UUID, write func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin review write: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := write(tx); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE activities
		SET rating = stats.avg_rating, total_reviews = stats.review_count, updated_at = NOW()
		FROM (
			SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE activity_id = $1
		) AS stats
		WHERE id = $1
	`, activityID)
	if err != nil {
		r.log.Error("Failed to refresh activity rating",
			zap.Error(err),
			zap.String("activity_id", activityID.String()),
		)
		return fmt.Errorf("refresh rating of activity %s: %w", activityID.String(), err)
	}

	return tx.Commit(ctx)
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.withRating(ctx, review.ActivityID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO reviews (id, user_id, activity_id, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			review.ID,
			review.UserID,
			review.ActivityID,
			review.Rating,
			review.Comment,
			review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create review",
				zap.Error(err),
				zap.String("user_id", review.UserID.String()),
				zap.String("activity_id", review.ActivityID.String()),
			)
			return fmt.Errorf("create review for activity %s by user %s: %w",
				review.ActivityID.String(), review.UserID.String(), err)
		}
		return nil
	})
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByActivityID(ctx context.Context, activityID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := reviewSelect + `
		WHERE r.activity_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.query(ctx, query, activityID, limit, offset)
}

func (r *reviewRepository) CountByActivityID(ctx context.Context, activityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE activity_id = $1`, activityID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by activity ID",
			zap.Error(err),
			zap.String("activity_id", activityID.String()),
		)
		return 0, fmt.Errorf("count reviews by activity ID %s: %w", activityID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return r.query(ctx, reviewSelect+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

func (r *reviewRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query reviews", zap.Error(err))
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*entity.Review, error) {
	query := reviewSelect + ` WHERE r.user_id = $1 AND r.activity_id = $2 LIMIT 1`

	review, err := scanReview(r.db.QueryRow(ctx, query, userID, activityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and activity",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("activity_id", activityID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and activity %s: %w",
			userID.String(), activityID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return r.withRating(ctx, review.ActivityID, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `UPDATE reviews SET rating = $2, comment = $3 WHERE id = $1`,
			review.ID,
			review.Rating,
			review.Comment,
		)
		if err != nil {
			r.log.Error("Failed to update review",
				zap.Error(err),
				zap.String("review_id", review.ID.String()),
			)
			return fmt.Errorf("update review %s: %w", review.ID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("review %s not found", review.ID.String())
		}
		return nil
	})
}

func (r *reviewRepository) Delete(ctx context.Context, review *entity.Review) error {
	return r.withRating(ctx, review.ActivityID, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, review.ID)
		if err != nil {
			r.log.Error("Failed to delete review",
				zap.Error(err),
				zap.String("review_id", review.ID.String()),
			)
			return fmt.Errorf("delete review %s: %w", review.ID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("review %s not found", review.ID.String())
		}
		r.log.Info("Review deleted", zap.String("review_id", review.ID.String()))
		return nil
	})
}
