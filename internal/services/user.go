package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	GetCurrentUser(ctx context.Context, id int64) (*models.CurrentUser, error)
	ChangePassword(ctx context.Context, id int64, req *models.ChangePasswordRequest) error
	ListUsers(ctx context.Context, page, size int) (*models.PaginatedResponse[*models.User], error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, id int64, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id int64) error
	EnsureAdmin(ctx context.Context, username, password string) error
}

type userService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{
		repo:      repo,
		rateLimit: rateLimit,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {

	user, err := s.createUser(ctx, req.Username, req.Password, false)
	if err != nil {
		return nil, err
	}

	middleware.LoggerFromContext(ctx).Info("User registered", slog.Int64("userId", user.ID))

	return s.issueToken(user)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	limit, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !limit.Allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", int(limit.RetryAfter.Seconds())))
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logger.Warn("Failed login attempt", slog.String("username", req.Username), slog.Int("remaining", limit.Remaining))
		return nil, errors.InvalidCredentialsError("Incorrect username or password")
	}

	if err := s.rateLimit.ResetLoginAttempts(ctx, req.Username); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	return s.issueToken(user)
}

func (s *userService) issueToken(user *models.User) (*models.TokenResponse, error) {

	now := time.Now()

	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		Username:    user.Username,
		IsAdmin:     user.IsAdmin,
	}, nil
}

// GetCurrentUser re-reads the account so deleted users lose access immediately.
func (s *userService) GetCurrentUser(ctx context.Context, id int64) (*models.CurrentUser, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.UnauthorizedError("Could not validate credentials")
		}
		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	return &models.CurrentUser{Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

func (s *userService) ChangePassword(ctx context.Context, id int64, req *models.ChangePasswordRequest) error {

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return errors.BadRequestError("Current password is incorrect")
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, hashed); err != nil {
		return errors.DatabaseError("Failed to update password").WithError(err)
	}

	return nil
}

func (s *userService) ListUsers(ctx context.Context, page, size int) (*models.PaginatedResponse[*models.User], error) {

	users, total, err := s.repo.ListUsers(ctx, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch users").WithError(err)
	}

	return &models.PaginatedResponse[*models.User]{Data: users, Total: total, Page: page, PageSize: size}, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	return s.createUser(ctx, req.Username, req.Password, req.IsAdmin)
}

func (s *userService) createUser(ctx context.Context, username, password string, isAdmin bool) (*models.User, error) {

	existingUser, _ := s.repo.GetUserByUsername(ctx, username)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Username already exists")
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashed,
		IsAdmin:  isAdmin,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID, id int64, req *models.UpdateUserRequest) (*models.User, error) {

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ID == actorID && req.IsAdmin != nil && !*req.IsAdmin {
		return nil, errors.BadRequestError("Cannot remove your own admin privileges")
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, _ := s.repo.GetUserByUsername(ctx, *req.Username)
		if existing != nil && existing.ID != id {
			return nil, errors.DuplicateEntryError("Username already exists")
		}
		user.Username = *req.Username
	}

	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update user").WithError(err)
	}

	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}

		if err := s.repo.UpdatePassword(ctx, id, hashed); err != nil {
			return nil, errors.DatabaseError("Failed to update password").WithError(err)
		}

		user.Password = hashed
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id int64) error {

	if actorID == id {
		return errors.BadRequestError("Cannot delete your own account")
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if isNotFound(err) {
			return errors.NotFoundError("User not found").WithError(err)
		}
		return errors.DatabaseError("Failed to delete user").WithError(err)
	}

	return nil
}

// EnsureAdmin creates the configured admin account when it does not exist yet.
// An existing account is left as is.
func (s *userService) EnsureAdmin(ctx context.Context, username, password string) error {

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil
	}

	if err != nil && !isNotFound(err) {
		return fmt.Errorf("looking up admin %q: %w", username, err)
	}

	if password == "" {
		return fmt.Errorf("admin %q does not exist and no password is configured", username)
	}

	if _, err := s.createUser(ctx, username, password, true); err != nil {
		return fmt.Errorf("creating admin %q: %w", username, err)
	}

	slog.Info("Seeded admin account", slog.String("username", username))

	return nil
}

func hashPassword(password string) (string, error) {

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.InternalError("Failed to secure password").WithError(err)
	}

	return string(hashed), nil
}
