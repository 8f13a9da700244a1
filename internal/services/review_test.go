package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	cacheMocks "github.com/aaravmahajanofficial/furniture-storefront/internal/cache/mocks"
	appErrors "github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/furniture-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewDeps struct {
	repo     *mocks.ReviewRepository
	products *mocks.ProductRepository
	cache    *cacheMocks.Cache
}

func newReviewService(t *testing.T) (service.ReviewService, reviewDeps) {
	t.Helper()

	deps := reviewDeps{
		repo:     mocks.NewReviewRepository(t),
		products: mocks.NewProductRepository(t),
		cache:    cacheMocks.NewCache(t),
	}

	return service.NewReviewService(deps.repo, deps.products, deps.cache), deps
}

func TestCreateReview(t *testing.T) {
	req := &models.CreateReviewRequest{ProductID: 1, Rating: 5, Comment: "Sturdy <i>and</i> pretty"}

	t.Run("Success - Auto approved", func(t *testing.T) {
		// Arrange
		svc, deps := newReviewService(t)

		deps.products.On("GetProductByID", mock.Anything, int64(1)).Return(&models.Product{ID: 1}, nil).Once()
		deps.repo.On("HasReviewed", mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
		deps.repo.On("CreateReview", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
			return r.IsApproved && r.UserID == 2 && r.Comment == "Sturdy and pretty"
		})).Return(nil).Once()
		deps.cache.On("Delete", mock.Anything, "rating:1").Return(nil).Once()

		// Act
		review, err := svc.CreateReview(t.Context(), 2, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
	})

	t.Run("Failure - Product missing", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.products.On("GetProductByID", mock.Anything, int64(1)).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.CreateReview(t.Context(), 2, req)

		appErr := assertAppError(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, "Product not found", appErr.Message)
	})

	t.Run("Failure - Already reviewed", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.products.On("GetProductByID", mock.Anything, int64(1)).Return(&models.Product{ID: 1}, nil).Once()
		deps.repo.On("HasReviewed", mock.Anything, int64(1), int64(2)).Return(true, nil).Once()

		_, err := svc.CreateReview(t.Context(), 2, req)

		appErr := assertAppError(t, err, appErrors.ErrCodeBadRequest)
		assert.Equal(t, "You have already reviewed this product", appErr.Message)
	})

	t.Run("Failure - Lost race on unique index", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.products.On("GetProductByID", mock.Anything, int64(1)).Return(&models.Product{ID: 1}, nil).Once()
		deps.repo.On("HasReviewed", mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
		deps.repo.On("CreateReview", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := svc.CreateReview(t.Context(), 2, req)

		assertAppError(t, err, appErrors.ErrCodeBadRequest)
	})
}

func TestGetProductRating(t *testing.T) {
	rating := &models.ProductRating{AverageRating: 4.7, ReviewCount: 3}

	t.Run("Success - Cache hit", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.cache.On("Get", mock.Anything, "rating:1", mock.Anything).
			Return(func(_ context.Context, _ string, v any) (bool, error) {
				*v.(*models.ProductRating) = *rating
				return true, nil
			}).Once()

		got, err := svc.GetProductRating(t.Context(), 1)

		require.NoError(t, err)
		assert.Equal(t, rating, got)
	})

	t.Run("Success - Cache miss", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.cache.On("Get", mock.Anything, "rating:1", mock.Anything).Return(false, nil).Once()
		deps.repo.On("GetProductRating", mock.Anything, int64(1)).Return(rating, nil).Once()
		deps.cache.On("Set", mock.Anything, "rating:1", rating, mock.Anything).Return(nil).Once()

		got, err := svc.GetProductRating(t.Context(), 1)

		require.NoError(t, err)
		assert.Equal(t, rating, got)
	})
}

func TestSetApproval(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.repo.On("SetApproval", mock.Anything, int64(8), false).Return(nil).Once()
		deps.repo.On("GetReviewByID", mock.Anything, int64(8)).Return(&models.Review{ID: 8, ProductID: 1, IsApproved: false}, nil).Once()
		deps.cache.On("Delete", mock.Anything, "rating:1").Return(nil).Once()

		review, err := svc.SetApproval(t.Context(), 8, false)

		require.NoError(t, err)
		assert.False(t, review.IsApproved)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.repo.On("SetApproval", mock.Anything, int64(77), true).Return(repository.ErrNotFound).Once()

		_, err := svc.SetApproval(t.Context(), 77, true)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestDeleteReview(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.repo.On("GetReviewByID", mock.Anything, int64(8)).Return(&models.Review{ID: 8, ProductID: 3}, nil).Once()
		deps.repo.On("DeleteReview", mock.Anything, int64(8)).Return(nil).Once()
		deps.cache.On("Delete", mock.Anything, "rating:3").Return(errors.New("redis down")).Once()

		assert.NoError(t, svc.DeleteReview(t.Context(), 8))
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		svc, deps := newReviewService(t)

		deps.repo.On("GetReviewByID", mock.Anything, int64(8)).Return(nil, repository.ErrNotFound).Once()

		err := svc.DeleteReview(t.Context(), 8)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})
}
