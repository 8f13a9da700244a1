package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error)
	ListOrdersByUser(ctx context.Context, userID int64, page, size int) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, customer_name, customer_phone, customer_address, total_amount, items, status, created_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {

	order := &models.Order{}

	var userID sql.NullInt64
	var address, items sql.NullString

	if err := row.Scan(&order.ID, &userID, &order.CustomerName, &order.CustomerPhone, &address, &order.TotalAmount, &items, &order.Status, &order.CreatedAt); err != nil {
		return nil, err
	}

	if userID.Valid {
		order.UserID = &userID.Int64
	}

	order.CustomerAddress = address.String
	order.Items = items.String

	return order, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	query := `
		INSERT INTO orders (user_id, customer_name, customer_phone, customer_address, total_amount, items, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	var userID sql.NullInt64
	if order.UserID != nil {
		userID = sql.NullInt64{Int64: *order.UserID, Valid: true}
	}

	err := r.DB.QueryRowContext(dbCtx, query, userID, order.CustomerName, order.CustomerPhone, order.CustomerAddress, order.TotalAmount, order.Items, order.Status).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	return order, nil
}

// ListOrders returns every order, newest first.
func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	orders, err := r.collect(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListOrdersByUser returns the orders placed while userID was signed in.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64, page, size int) ([]*models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.collect(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) collect(ctx context.Context, query string, args ...any) ([]*models.Order, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// Update Order status
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return expectOneRow(result)
}

// GetStats aggregates the admin dashboard figures. Customers are counted by
// distinct phone number since guests can order.
func (r *orderRepository) GetStats(ctx context.Context) (*models.DashboardStats, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT
			COALESCE(SUM(total_amount), 0),
			COUNT(id),
			COUNT(DISTINCT customer_phone),
			(SELECT COUNT(*) FROM products)
		FROM orders
	`

	stats := &models.DashboardStats{}

	err := r.DB.QueryRowContext(dbCtx, query).Scan(&stats.TotalSales, &stats.TotalOrders, &stats.TotalCustomers, &stats.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return stats, nil
}
