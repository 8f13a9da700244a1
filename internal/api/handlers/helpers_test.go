package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/stretchr/testify/require"
)

// newTestRequest -> creates a request with context containing a logger
func newTestRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))

	logger := slog.Default()
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)
	return req.WithContext(ctx)
}

func withClaims(req *http.Request, userID int64, username string, isAdmin bool) *http.Request {
	claims := &models.Claims{UserID: userID, Username: username, IsAdmin: isAdmin}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))

	return env
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	env := decodeEnvelope(t, rr)
	require.True(t, env.Success, rr.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))

	return out
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	return b
}
