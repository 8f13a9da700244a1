package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Login posts the credentials form-encoded.
func (c *Client) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "auth/login", nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}

	var token models.TokenResponse
	if err := c.do(req, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	var token models.TokenResponse
	req := models.RegisterRequest{Username: username, Password: password}

	if err := c.doJSON(ctx, http.MethodPost, "auth/register", nil, req, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (c *Client) Me(ctx context.Context) (*models.CurrentUser, error) {
	var user models.CurrentUser
	if err := c.doJSON(ctx, http.MethodGet, "auth/me", nil, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ChangePassword returns the server's confirmation message.
func (c *Client) ChangePassword(ctx context.Context, current, next string) (string, error) {
	var resp messageResponse
	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}

	if err := c.doJSON(ctx, http.MethodPost, "auth/change-password", nil, req, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}
