package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID              int64       `json:"id"`
	UserID          *int64      `json:"user_id,omitempty"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address,omitempty"`
	TotalAmount     float64     `json:"total_amount"`
	Items           string      `json:"items"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderLine is one element of the JSON array stored in Order.Items.
type OrderLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerPhone   string  `json:"customer_phone" validate:"required,min=10,max=30"`
	CustomerAddress string  `json:"customer_address,omitempty" validate:"max=1000"`
	TotalAmount     float64 `json:"total_amount" validate:"gte=0"`
	Items           string  `json:"items" validate:"required"`
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

type DashboardStats struct {
	TotalSales     float64 `json:"total_sales"`
	TotalOrders    int64   `json:"total_orders"`
	TotalCustomers int64   `json:"total_customers"`
	TotalProducts  int64   `json:"total_products"`
}
