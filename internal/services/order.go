package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID *int64, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) (*models.PaginatedResponse[*models.Order], error)
	ListMyOrders(ctx context.Context, userID int64, page, size int) (*models.PaginatedResponse[*models.Order], error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type orderService struct {
	repo     repository.OrderRepository
	notifier NotificationService
}

// NewOrderService takes a nil notifier when mail is not configured.
func NewOrderService(repo repository.OrderRepository, notifier NotificationService) OrderService {
	return &orderService{repo: repo, notifier: notifier}
}

func (s *orderService) CreateOrder(ctx context.Context, userID *int64, req *models.CreateOrderRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	var lines []models.OrderLine
	if err := json.Unmarshal([]byte(req.Items), &lines); err != nil {
		return nil, errors.BadRequestError("Invalid order items").WithDetail(err.Error())
	}

	if len(lines) == 0 {
		return nil, errors.BadRequestError("Cannot create order with no items")
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, errors.AddValidationError("items", "quantity must be at least 1")
		}
	}

	order := &models.Order{
		UserID:          userID,
		CustomerName:    utils.Sanitize(req.CustomerName),
		CustomerPhone:   utils.Sanitize(req.CustomerPhone),
		CustomerAddress: utils.Sanitize(req.CustomerAddress),
		TotalAmount:     req.TotalAmount,
		Items:           req.Items,
		Status:          models.OrderStatusPending,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	logger.Info("Order created", slog.Int64("orderId", order.ID), slog.Int("lines", len(lines)))

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			logger.Warn("Failed to notify shop about order", slog.Int64("orderId", order.ID), slog.Any("error", err))
		}
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) (*models.PaginatedResponse[*models.Order], error) {

	orders, total, err := s.repo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.PaginatedResponse[*models.Order]{Data: orders, Total: total, Page: page, PageSize: size}, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID int64, page, size int) (*models.PaginatedResponse[*models.Order], error) {

	orders, total, err := s.repo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.PaginatedResponse[*models.Order]{Data: orders, Total: total, Page: page, PageSize: size}, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {

	order, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {

	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		if isNotFound(err) {
			return errors.NotFoundError("Order not found").WithError(err)
		}
		return errors.DatabaseError("Failed to delete order").WithError(err)
	}

	return nil
}

func (s *orderService) GetStats(ctx context.Context) (*models.DashboardStats, error) {

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch stats").WithError(err)
	}

	return stats, nil
}
