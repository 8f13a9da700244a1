package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/cache"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID int64, req *models.CreateReviewRequest) (*models.Review, error)
	ListProductReviews(ctx context.Context, productID int64) ([]*models.Review, error)
	GetProductRating(ctx context.Context, productID int64) (*models.ProductRating, error)
	ListReviews(ctx context.Context) ([]*models.Review, error)
	SetApproval(ctx context.Context, id int64, approved bool) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type reviewService struct {
	repo     repository.ReviewRepository
	products repository.ProductRepository
	cache    cache.Cache
}

func NewReviewService(repo repository.ReviewRepository, products repository.ProductRepository, cache cache.Cache) ReviewService {
	return &reviewService{repo: repo, products: products, cache: cache}
}

func (s *reviewService) CreateReview(ctx context.Context, userID int64, req *models.CreateReviewRequest) (*models.Review, error) {

	if _, err := s.products.GetProductByID(ctx, req.ProductID); err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	exists, err := s.repo.HasReviewed(ctx, req.ProductID, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check existing review").WithError(err)
	}

	if exists {
		return nil, errors.BadRequestError("You have already reviewed this product")
	}

	review := &models.Review{
		ProductID:  req.ProductID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    utils.Sanitize(req.Comment),
		IsApproved: true,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.BadRequestError("You have already reviewed this product")
		}
		return nil, errors.DatabaseError("Failed to create review").WithError(err)
	}

	s.invalidateRating(ctx, req.ProductID)

	return review, nil
}

func (s *reviewService) ListProductReviews(ctx context.Context, productID int64) ([]*models.Review, error) {

	reviews, err := s.repo.ListApprovedByProduct(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}

func (s *reviewService) GetProductRating(ctx context.Context, productID int64) (*models.ProductRating, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.RatingKeyPrefix, productID)

	var cached models.ProductRating
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Rating cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return &cached, nil
	}

	rating, err := s.repo.GetProductRating(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch rating").WithError(err)
	}

	if err := s.cache.Set(ctx, key, rating, 0); err != nil {
		logger.Warn("Rating cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return rating, nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]*models.Review, error) {

	reviews, err := s.repo.ListReviews(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}

func (s *reviewService) SetApproval(ctx context.Context, id int64, approved bool) (*models.Review, error) {

	if err := s.repo.SetApproval(ctx, id, approved); err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Review not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update review").WithError(err)
	}

	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Review not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch review").WithError(err)
	}

	s.invalidateRating(ctx, review.ProductID)

	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {

	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return errors.NotFoundError("Review not found").WithError(err)
		}
		return errors.DatabaseError("Failed to fetch review").WithError(err)
	}

	if err := s.repo.DeleteReview(ctx, id); err != nil {
		if isNotFound(err) {
			return errors.NotFoundError("Review not found").WithError(err)
		}
		return errors.DatabaseError("Failed to delete review").WithError(err)
	}

	s.invalidateRating(ctx, review.ProductID)

	return nil
}

func (s *reviewService) invalidateRating(ctx context.Context, productID int64) {

	if err := s.cache.Delete(ctx, cache.Key(cache.RatingKeyPrefix, productID)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Rating cache invalidation failed", slog.Int64("productId", productID), slog.Any("error", err))
	}
}
