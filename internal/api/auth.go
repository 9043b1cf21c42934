package api

import (
	"context"

	"github.com/anonto42/threads-go-client/internal/models"
)

// AuthAPI defines the interface for authentication operations
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.Token, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// HTTPAuthAPI implements AuthAPI against the remote server
type HTTPAuthAPI struct {
	client *Client
}

// NewHTTPAuthAPI creates a new HTTPAuthAPI
func NewHTTPAuthAPI(client *Client) *HTTPAuthAPI {
	return &HTTPAuthAPI{client: client}
}

// Login exchanges credentials for a bearer token
func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (*models.Token, error) {
	var token models.Token
	err := a.client.postJSON(ctx, "/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates a new account. The server does not log the user in;
// callers follow up with Login, as the reference frontend does.
func (a *HTTPAuthAPI) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var user models.User
	err := a.client.postJSON(ctx, "/auth/register", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser resolves the bearer token to its owning user
func (a *HTTPAuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.client.getJSON(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
