package apiclient

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
)

func (c *Client) ListProductReviews(ctx context.Context, productID int64) ([]*models.Review, error) {
	var reviews []*models.Review
	if err := c.doJSON(ctx, http.MethodGet, productPath(productID)+"/reviews", nil, nil, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (c *Client) GetProductRating(ctx context.Context, productID int64) (*models.ProductRating, error) {
	var rating models.ProductRating
	if err := c.doJSON(ctx, http.MethodGet, productPath(productID)+"/rating", nil, nil, &rating); err != nil {
		return nil, err
	}

	return &rating, nil
}

func (c *Client) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := c.doJSON(ctx, http.MethodPost, "reviews", nil, req, &review); err != nil {
		return nil, err
	}

	return &review, nil
}
