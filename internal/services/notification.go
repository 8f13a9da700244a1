package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/pkg/sendgrid"
)

// NotificationService tells the shop about new orders.
type NotificationService interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

type notificationService struct {
	emailService sendgrid.EmailService
	shopEmail    string
}

func NewNotificationService(emailService sendgrid.EmailService, shopEmail string) NotificationService {
	return &notificationService{emailService: emailService, shopEmail: shopEmail}
}

func (n *notificationService) OrderPlaced(ctx context.Context, order *models.Order) error {

	var lines []models.OrderLine
	if err := json.Unmarshal([]byte(order.Items), &lines); err != nil {
		return fmt.Errorf("failed to decode order items: %w", err)
	}

	var text, markup strings.Builder

	fmt.Fprintf(&text, "Customer: %s\nPhone: %s\nAddress: %s\n\n", order.CustomerName, order.CustomerPhone, order.CustomerAddress)
	fmt.Fprintf(&markup, "<p>Customer: %s<br>Phone: %s<br>Address: %s</p><ul>",
		html.EscapeString(order.CustomerName), html.EscapeString(order.CustomerPhone), html.EscapeString(order.CustomerAddress))

	for _, line := range lines {
		fmt.Fprintf(&text, "%d x %s @ %.2f\n", line.Quantity, line.Name, line.Price)
		fmt.Fprintf(&markup, "<li>%d x %s @ %.2f</li>", line.Quantity, html.EscapeString(line.Name), line.Price)
	}

	fmt.Fprintf(&text, "\nTotal: %.2f\n", order.TotalAmount)
	fmt.Fprintf(&markup, "</ul><p><strong>Total: %.2f</strong></p>", order.TotalAmount)

	msg := &sendgrid.Message{
		To:          n.shopEmail,
		ToName:      "Shop",
		Subject:     fmt.Sprintf("New order #%d", order.ID),
		Content:     text.String(),
		HTMLContent: markup.String(),
	}

	if err := n.emailService.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send order email: %w", err)
	}

	return nil
}
