package api

import (
	"context"

	"github.com/hotelmanager/staffkit/core"
)

// AuthAPI covers the backend's own auth endpoints. Day-to-day sign-in
// goes through the identity provider; these exist for administrative
// flows the backend mediates itself.
type AuthAPI struct {
	client *Client
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Name     string    `json:"nombre"`
	Role     core.Role `json:"rol"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (a *AuthAPI) Login(ctx context.Context, creds Credentials) (*core.User, error) {
	var user core.User
	if err := a.client.post(ctx, "/auth/login", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a staff account. Admin only; the backend enforces it.
func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*core.User, error) {
	var user core.User
	if err := a.client.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.post(ctx, "/auth/logout", nil, nil)
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return a.client.post(ctx, "/auth/change-password", req, nil)
}
