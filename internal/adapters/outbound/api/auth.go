package api

import (
	"context"
	"net/http"

	"github.com/abdidvp/invdash/internal/domain"
)

// Auth implements domain.AuthGateway.
type Auth struct {
	client *Client
}

func NewAuth(c *Client) *Auth { return &Auth{client: c} }

func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	return a.exchange(ctx, "/login", creds)
}

func (a *Auth) Signup(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	return a.exchange(ctx, "/register", creds)
}

func (a *Auth) exchange(ctx context.Context, path string, creds domain.Credentials) (domain.AuthResult, error) {
	var res domain.AuthResult
	if err := a.client.Do(ctx, http.MethodPost, path, creds, &res); err != nil {
		return domain.AuthResult{}, err
	}
	return res, nil
}
