package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListUsers(t *testing.T) {
	svc := mocks.NewUserService(t)
	h := handlers.NewUserHandler(svc)
	rr := httptest.NewRecorder()

	svc.On("ListUsers", mock.Anything, 1, 20).
		Return(&models.PaginatedResponse[*models.User]{Data: []*models.User{{ID: 1, Username: "admin", Password: "hash", IsAdmin: true}}, Total: 1, Page: 1, PageSize: 20}, nil).Once()

	h.ListUsers().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hash")
}

func TestCreateUser(t *testing.T) {
	svc := mocks.NewUserService(t)
	h := handlers.NewUserHandler(svc)
	rr := httptest.NewRecorder()

	svc.On("CreateUser", mock.Anything, &models.CreateUserRequest{Username: "karim", Password: "secret1", IsAdmin: true}).
		Return(&models.User{ID: 2, Username: "karim", IsAdmin: true}, nil).Once()

	h.CreateUser().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/users", []byte(`{"username":"karim","password":"secret1","is_admin":true}`)))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestUpdateUser(t *testing.T) {
	svc := mocks.NewUserService(t)
	h := handlers.NewUserHandler(svc)
	rr := httptest.NewRecorder()
	req := withClaims(newTestRequest(http.MethodPut, "/api/users/1", []byte(`{"is_admin":false}`)), 1, "admin", true)
	req.SetPathValue("id", "1")

	svc.On("UpdateUser", mock.Anything, int64(1), int64(1), mock.Anything).
		Return(nil, appErrors.BadRequestError("Cannot remove your own admin privileges")).Once()

	h.UpdateUser().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cannot remove your own admin privileges")
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewUserService(t)
		h := handlers.NewUserHandler(svc)
		rr := httptest.NewRecorder()
		req := withClaims(newTestRequest(http.MethodDelete, "/api/users/7", nil), 1, "admin", true)
		req.SetPathValue("id", "7")

		svc.On("DeleteUser", mock.Anything, int64(1), int64(7)).Return(nil).Once()

		h.DeleteUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"data":{"message":"User deleted successfully"}}`, rr.Body.String())
	})

	t.Run("Failure - Invalid id", func(t *testing.T) {
		svc := mocks.NewUserService(t)
		h := handlers.NewUserHandler(svc)
		rr := httptest.NewRecorder()
		req := withClaims(newTestRequest(http.MethodDelete, "/api/users/x", nil), 1, "admin", true)
		req.SetPathValue("id", "x")

		h.DeleteUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
