package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(userID int64, username string, isAdmin bool, duration time.Duration, key []byte, method jwt.SigningMethod) (string, error) {
	claims := &models.Claims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token := jwt.NewWithClaims(method, claims)

	return token.SignedString(key)
}

func newRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, baseLogger)

	return req.WithContext(ctx)
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := int64(7)
	username := "rubel"

	mockNextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "User claims should be in context")
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, username, claims.Username)

		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success - Valid Token",
			authHeader: func() string {
				token, err := createTestToken(userID, username, false, time.Hour, testJwtKey, jwt.SigningMethodHS256)
				require.NoError(t, err)
				return "Bearer " + token
			}(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail - No Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Authorization header is required"}}`,
		},
		{
			name:           "Fail - Invalid Header Format",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid authorization format"}}`,
		},
		{
			name:           "Fail - Malformed Token",
			authHeader:     "Bearer not.a.valid.token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
		{
			name: "Fail - Wrong Signing Key",
			authHeader: func() string {
				token, err := createTestToken(userID, username, false, time.Hour, []byte("different-secret-key-0987654321"), jwt.SigningMethodHS256)
				require.NoError(t, err)
				return "Bearer " + token
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
		{
			name: "Fail - Wrong Signing Method",
			authHeader: func() string {
				token, err := createTestToken(userID, username, false, time.Hour, testJwtKey, jwt.SigningMethodHS512)
				require.NoError(t, err)
				return "Bearer " + token
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
		{
			name: "Fail - Expired Token",
			authHeader: func() string {
				token, err := createTestToken(userID, username, false, -time.Hour, testJwtKey, jwt.SigningMethodHS256)
				require.NoError(t, err)
				return "Bearer " + token
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(tc.authHeader)
			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(mockNextHandler).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code, "Unexpected status code")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Unexpected response body")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Success - Admin token", func(t *testing.T) {
		called = false
		token, err := createTestToken(1, "admin", true, time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		authMiddleware.RequireAdmin(next).ServeHTTP(rr, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, called)
	})

	t.Run("Fail - User token", func(t *testing.T) {
		called = false
		token, err := createTestToken(2, "buyer", false, time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		authMiddleware.RequireAdmin(next).ServeHTTP(rr, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, called)
		assert.JSONEq(t, `{"success": false, "error": {"code": "FORBIDDEN", "message": "Admin access required"}}`, rr.Body.String())
	})

	t.Run("Fail - Guest", func(t *testing.T) {
		called = false

		rr := httptest.NewRecorder()
		authMiddleware.RequireAdmin(next).ServeHTTP(rr, newRequest(""))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})
}

func TestOptional(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)

	var gotClaims bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotClaims = middleware.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Guest passes without claims", func(t *testing.T) {
		rr := httptest.NewRecorder()
		authMiddleware.Optional(next).ServeHTTP(rr, newRequest(""))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotClaims)
	})

	t.Run("Invalid token passes as guest", func(t *testing.T) {
		rr := httptest.NewRecorder()
		authMiddleware.Optional(next).ServeHTTP(rr, newRequest("Bearer garbage"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotClaims)
	})

	t.Run("Valid token attaches claims", func(t *testing.T) {
		token, err := createTestToken(3, "buyer", false, time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		authMiddleware.Optional(next).ServeHTTP(rr, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, gotClaims)
	})
}

func TestLogging(t *testing.T) {
	var logger *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger = middleware.LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()

	middleware.Logging(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
	assert.NotNil(t, logger)
}
