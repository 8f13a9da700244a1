package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
	"github.com/lib/pq"
)

// ErrDuplicate is returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("duplicate record")

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	ListApprovedByProduct(ctx context.Context, productID int64) ([]*models.Review, error)
	ListReviews(ctx context.Context) ([]*models.Review, error)
	HasReviewed(ctx context.Context, productID, userID int64) (bool, error)
	SetApproval(ctx context.Context, id int64, approved bool) error
	DeleteReview(ctx context.Context, id int64) error
	GetProductRating(ctx context.Context, productID int64) (*models.ProductRating, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

// Reviews of deleted users keep showing under "Anonymous".
const reviewSelect = `
	SELECT r.id, r.product_id, r.user_id, COALESCE(u.username, 'Anonymous'), r.rating, COALESCE(r.comment, ''), r.is_approved, r.created_at
	FROM reviews r
	LEFT JOIN users u ON u.id = r.user_id`

func scanReview(row interface{ Scan(dest ...any) error }) (*models.Review, error) {
	review := &models.Review{}

	err := row.Scan(&review.ID, &review.ProductID, &review.UserID, &review.Username, &review.Rating, &review.Comment, &review.IsApproved, &review.CreatedAt)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, review.ProductID, review.UserID, review.Rating, review.Comment, review.IsApproved).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	review, err := scanReview(r.DB.QueryRowContext(dbCtx, reviewSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) ListApprovedByProduct(ctx context.Context, productID int64) ([]*models.Review, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.collect(dbCtx, reviewSelect+` WHERE r.product_id = $1 AND r.is_approved = TRUE ORDER BY r.created_at DESC`, productID)
}

func (r *reviewRepository) ListReviews(ctx context.Context) ([]*models.Review, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.collect(dbCtx, reviewSelect+` ORDER BY r.created_at DESC`)
}

func (r *reviewRepository) collect(ctx context.Context, query string, args ...any) ([]*models.Review, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	reviews := []*models.Review{}

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) HasReviewed(ctx context.Context, productID, userID int64) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`, productID, userID).Scan(&exists)

	return exists, err
}

func (r *reviewRepository) SetApproval(ctx context.Context, id int64, approved bool) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE reviews SET is_approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return expectOneRow(result)
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return expectOneRow(result)
}

// GetProductRating averages approved reviews, rounded to one decimal.
func (r *reviewRepository) GetProductRating(ctx context.Context, productID int64) (*models.ProductRating, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var avg sql.NullFloat64
	rating := &models.ProductRating{}

	query := `SELECT AVG(rating), COUNT(id) FROM reviews WHERE product_id = $1 AND is_approved = TRUE`

	if err := r.DB.QueryRowContext(dbCtx, query, productID).Scan(&avg, &rating.ReviewCount); err != nil {
		return nil, fmt.Errorf("failed to compute rating: %w", err)
	}

	if avg.Valid {
		rating.AverageRating = math.Round(avg.Float64*10) / 10
	}

	return rating, nil
}
