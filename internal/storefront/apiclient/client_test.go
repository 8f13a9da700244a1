package apiclient_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/apiclient"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc, token string) *apiclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.Client(), server.URL+"/api", func() string { return token })
	require.NoError(t, err)

	return client
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "Failure - Envelope error",
			status:          http.StatusUnauthorized,
			body:            `{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"Incorrect username or password"}}`,
			expectedMessage: "Incorrect username or password",
		},
		{
			name:            "Failure - Envelope error with details",
			status:          http.StatusTooManyRequests,
			body:            `{"success":false,"error":{"code":"TOO_MANY_REQUESTS","message":"Too many login attempts","details":["retry after 9 seconds"]}}`,
			expectedMessage: "Too many login attempts: retry after 9 seconds",
		},
		{
			name:            "Failure - Detail field",
			status:          http.StatusBadRequest,
			body:            `{"detail":"Username already registered"}`,
			expectedMessage: "Username already registered",
		},
		{
			name:            "Failure - Not JSON",
			status:          http.StatusBadGateway,
			body:            `<html>bad gateway</html>`,
			expectedMessage: "API Error: Bad Gateway",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}, "")

			_, err := client.Me(t.Context())

			require.Error(t, err)
			assert.Equal(t, tc.expectedMessage, err.Error())
			assert.True(t, apiclient.IsStatus(err, tc.status))
		})
	}
}

func TestRequests(t *testing.T) {
	t.Run("Success - Bearer token and query", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "sofa", r.URL.Query().Get("category"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			response.Success(w, http.StatusOK, models.PaginatedResponse[*models.Product]{
				Data:  []*models.Product{{ID: 4, NameEn: "Sofa", Price: 300}},
				Total: 1, Page: 2, PageSize: 20,
			})
		}, "tok")

		page, err := client.ListProducts(t.Context(), apiclient.ProductQuery{Category: "sofa", Page: 2})

		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Sofa", page.Data[0].NameEn)
	})

	t.Run("Success - Anonymous call sends no header", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			response.Success(w, http.StatusOK, models.ProductRating{AverageRating: 4.5, ReviewCount: 2})
		}, "")

		rating, err := client.GetProductRating(t.Context(), 9)

		require.NoError(t, err)
		assert.InDelta(t, 4.5, rating.AverageRating, 0.001)
	})

	t.Run("Success - Multipart product create", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Teak Bed", r.FormValue("nameEn"))
			assert.Equal(t, "1200.5", r.FormValue("price"))

			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "bed.png", header.Filename)

			response.Success(w, http.StatusCreated, models.Product{ID: 8, NameEn: "Teak Bed"})
		}, "admin-token")

		product, err := client.CreateProduct(t.Context(), &models.CreateProductRequest{
			NameEn: "Teak Bed", NameBn: "খাট", Price: 1200.5, Category: "bed",
		}, &models.Image{Filename: "bed.png", Data: []byte("\x89PNG")})

		require.NoError(t, err)
		assert.Equal(t, int64(8), product.ID)
	})

	t.Run("Failure - Product create without image", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}, "")

		_, err := client.CreateProduct(t.Context(), &models.CreateProductRequest{NameEn: "x"}, nil)

		require.Error(t, err)
	})

	t.Run("Success - Update order status", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/orders/5/status", r.URL.Path)

			var req models.UpdateOrderStatusRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, models.OrderStatusCompleted, req.Status)

			response.Success(w, http.StatusOK, models.Order{ID: 5, Status: req.Status})
		}, "admin-token")

		order, err := client.UpdateOrderStatus(t.Context(), 5, models.OrderStatusCompleted)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
	})
}

// Drives the real router so request shapes stay in step with the server.
func TestAgainstRouter(t *testing.T) {
	users := mocks.NewUserService(t)
	orders := mocks.NewOrderService(t)

	handler := api.NewRouter(api.Services{
		Users:    users,
		Products: mocks.NewProductService(t),
		Orders:   orders,
		Reviews:  mocks.NewReviewService(t),
	}, api.RouterConfig{JWTKey: []byte("client-router-secret-123456")})

	server := httptest.NewServer(handler)
	defer server.Close()

	client, err := apiclient.New(server.Client(), server.URL+"/api", nil)
	require.NoError(t, err)

	t.Run("Success - Form login", func(t *testing.T) {
		users.On("Login", mock.Anything, &models.LoginRequest{Username: "rubel", Password: "secret1"}).
			Return(&models.TokenResponse{AccessToken: "jwt", TokenType: "bearer", Username: "rubel"}, nil).Once()

		token, err := client.Login(t.Context(), "rubel", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "jwt", token.AccessToken)
		assert.Equal(t, "rubel", token.Username)
	})

	t.Run("Success - Guest order", func(t *testing.T) {
		req := &models.CreateOrderRequest{
			CustomerName:  "Rahim",
			CustomerPhone: "01700000000",
			TotalAmount:   600,
			Items:         `[{"id":1,"name":"Sofa","quantity":1,"price":100}]`,
		}
		orders.On("CreateOrder", mock.Anything, (*int64)(nil), req).
			Return(&models.Order{ID: 31, TotalAmount: 600}, nil).Once()

		resp, err := client.CreateOrder(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(31), resp.OrderID)
		assert.Equal(t, "Order created successfully", resp.Message)
	})

	t.Run("Failure - Admin route without token", func(t *testing.T) {
		_, err := client.GetStats(t.Context())

		require.Error(t, err)
		assert.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))
	})
}
