package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
)

func pageQuery(page, size int) url.Values {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		values.Set("pageSize", strconv.Itoa(size))
	}
	return values
}

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	var resp models.CreateOrderResponse
	if err := c.doJSON(ctx, http.MethodPost, "orders", nil, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) ListOrders(ctx context.Context, page, size int) (*models.PaginatedResponse[*models.Order], error) {
	var orders models.PaginatedResponse[*models.Order]
	if err := c.doJSON(ctx, http.MethodGet, "orders", pageQuery(page, size), nil, &orders); err != nil {
		return nil, err
	}

	return &orders, nil
}

func (c *Client) ListMyOrders(ctx context.Context, page, size int) (*models.PaginatedResponse[*models.Order], error) {
	var orders models.PaginatedResponse[*models.Order]
	if err := c.doJSON(ctx, http.MethodGet, "orders/mine", pageQuery(page, size), nil, &orders); err != nil {
		return nil, err
	}

	return &orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	req := models.UpdateOrderStatusRequest{Status: status}

	if err := c.doJSON(ctx, http.MethodPatch, "orders/"+strconv.FormatInt(id, 10)+"/status", nil, req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "orders/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *Client) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "stats", nil, nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}
