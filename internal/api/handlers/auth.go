package handlers

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	service "github.com/aaravmahajanofficial/furniture-storefront/internal/services"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService, validator: validator.New()}
}

// Login accepts the OAuth2 password form (username, password) or the same
// fields as JSON.
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				response.Error(w, errors.BadRequestError("Invalid form body").WithDetail(err.Error()))
				return
			}

			req.Username = r.PostForm.Get("username")
			req.Password = r.PostForm.Get("password")

			if !utils.Validate(w, &req, h.validator) {
				return
			}
		} else if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeTooManyRequests {
				metrics.ObserveLogin("throttled")
			} else {
				metrics.ObserveLogin("rejected")
			}
			response.Error(w, err)
			return
		}

		metrics.ObserveLogin("success")
		logger.Info("User logged in", slog.String("username", resp.Username))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("User registration failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		me, err := h.userService.GetCurrentUser(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, me)
	}
}

func (h *AuthHandler) ChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.ChangePasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.ChangePassword(r.Context(), claims.UserID, &req); err != nil {
			logger.Warn("Password change failed", slog.Int64("userId", claims.UserID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Password changed", slog.Int64("userId", claims.UserID))
		response.Success(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// requireClaims writes a 401 when the request carries no verified token.
func requireClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Warn("Missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}
