package api

import (
	"context"
	"net/http"

	"github.com/fitnessdump/fitdump/internal/model"
)

// Auth covers the account endpoints.
type Auth struct {
	client *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{client: c}
}

func (a *Auth) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	return post[model.AuthResponse](ctx, a.client, "/auth/login", nil, req)
}

// Register creates the account. It does not sign in.
func (a *Auth) Register(ctx context.Context, req model.RegisterRequest) error {
	return a.client.Do(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error) {
	body := map[string]string{"refreshToken": refreshToken}
	return post[model.AuthResponse](ctx, a.client, "/auth/refresh", nil, body)
}

func (a *Auth) Validate(ctx context.Context, token string) error {
	return a.client.Do(ctx, http.MethodPost, "/auth/validate", nil, map[string]string{"token": token}, nil)
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (a *Auth) UpdateProfile(ctx context.Context, req model.UpdateProfile) error {
	return a.client.Do(ctx, http.MethodPut, "/auth/profile", nil, req, nil)
}

func (a *Auth) ChangePassword(ctx context.Context, req model.ChangePassword) error {
	return a.client.Do(ctx, http.MethodPost, "/auth/change-password", nil, req, nil)
}

func (a *Auth) User(ctx context.Context, id int64) (model.User, error) {
	p, err := idPath("/users", id)
	if err != nil {
		return model.User{}, err
	}
	return get[model.User](ctx, a.client, p, nil)
}
