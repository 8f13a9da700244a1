// Package checkout turns the cart into an order on the server.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/auth"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/cart"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultDeliveryFee = 500

	OrderHistoryPath = "/order-history"
	HomePath         = "/"
	CartPath         = "/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

type Form struct {
	FullName string `validate:"required,min=2"`
	Phone    string `validate:"required,min=10"`
	Address  string `validate:"required,min=10"`
}

var fieldMessages = map[string]string{
	"FullName": "Name is required",
	"Phone":    "Valid phone number is required",
	"Address":  "Full address is required",
}

// FormError maps each rejected field to a message for the user.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, len(names))
	for i, name := range names {
		messages[i] = e.Fields[name]
	}
	return "invalid checkout form: " + strings.Join(messages, "; ")
}

type Gateway interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error)
}

type IdentitySource interface {
	Identity() *auth.Identity
}

// Result says which order was created and where to go next.
type Result struct {
	OrderID int64
	Next    string
}

type Service struct {
	cart        *cart.Store
	identity    IdentitySource
	gateway     Gateway
	notifier    notify.Notifier
	validator   *validator.Validate
	deliveryFee float64
	logger      *slog.Logger
}

func NewService(cartStore *cart.Store, identity IdentitySource, gateway Gateway, notifier notify.Notifier, deliveryFee float64, logger *slog.Logger) *Service {
	return &Service{
		cart:        cartStore,
		identity:    identity,
		gateway:     gateway,
		notifier:    notifier,
		validator:   validator.New(),
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// Total is what the customer pays: the cart total plus delivery.
func (s *Service) Total() float64 {
	return s.cart.Total() + s.deliveryFee
}

// Prefill returns a form with the signed-in username as the name.
func (s *Service) Prefill() Form {
	if identity := s.identity.Identity(); identity != nil {
		return Form{FullName: identity.Username}
	}
	return Form{}
}

func (s *Service) Validate(form Form) error {
	err := s.validator.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	formErr := &FormError{Fields: map[string]string{}}
	for _, fieldErr := range validationErrs {
		formErr.Fields[fieldErr.Field()] = fieldMessages[fieldErr.Field()]
	}
	return formErr
}

// Submit places the order. The cart is cleared only when the server accepted
// it; any failure leaves the cart as it was.
func (s *Service) Submit(ctx context.Context, form Form) (*Result, error) {
	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	form.FullName = strings.TrimSpace(form.FullName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Address = strings.TrimSpace(form.Address)

	if err := s.Validate(form); err != nil {
		return nil, err
	}

	req, err := BuildOrder(s.cart.Items(), form, s.deliveryFee)
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		s.logger.Warn("Order submission failed", slog.String("error", err.Error()))
		message := err.Error()
		if message == "" {
			message = "Something went wrong. Please try again."
		}
		s.notifier.Notify(notify.Error("Order Failed", message))
		return nil, err
	}

	s.logger.Info("Order placed", slog.Int64("orderId", resp.OrderID), slog.Float64("total", req.TotalAmount))
	s.notifier.Notify(notify.Info("Order Placed Successfully!",
		fmt.Sprintf("Order #%d created. We will contact you shortly.", resp.OrderID)))

	s.cart.Clear()

	next := HomePath
	if s.identity.Identity() != nil {
		next = OrderHistoryPath
	}

	return &Result{OrderID: resp.OrderID, Next: next}, nil
}

// BuildOrder serializes the cart lines in cart order and adds the delivery fee.
func BuildOrder(items []cart.Item, form Form, deliveryFee float64) (*models.CreateOrderRequest, error) {
	lines := make([]models.OrderLine, len(items))
	var subtotal float64

	for i, item := range items {
		lines[i] = models.OrderLine{
			ID:       item.Product.ID,
			Name:     item.Product.NameEn,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		}
		subtotal += item.Subtotal()
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encoding order items: %w", err)
	}

	return &models.CreateOrderRequest{
		CustomerName:    form.FullName,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Address,
		TotalAmount:     subtotal + deliveryFee,
		Items:           string(raw),
	}, nil
}
