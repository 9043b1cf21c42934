package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anonto42/threads-go-client/internal/models"
)

// UserAPI defines the interface for profile operations
type UserAPI interface {
	GetProfile(ctx context.Context, id uint) (*models.Profile, error)
	UpdateMe(ctx context.Context, req models.UpdateUserRequest) (*models.UserUpdateResponse, error)
	UploadAvatar(ctx context.Context, file Upload) (*models.User, error)
	DeleteAvatar(ctx context.Context) error
}

// HTTPUserAPI implements UserAPI against the remote server
type HTTPUserAPI struct {
	client *Client
}

// NewHTTPUserAPI creates a new HTTPUserAPI
func NewHTTPUserAPI(client *Client) *HTTPUserAPI {
	return &HTTPUserAPI{client: client}
}

// GetProfile retrieves a user's profile with their posts, comments and counts
func (a *HTTPUserAPI) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := a.client.getJSON(ctx, fmt.Sprintf("/users/%d", id), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe updates the authenticated user. The response may carry a rotated
// bearer token which the session layer must persist.
func (a *HTTPUserAPI) UpdateMe(ctx context.Context, req models.UpdateUserRequest) (*models.UserUpdateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := a.client.newRequest(ctx, http.MethodPut, "/users/me", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	var resp models.UserUpdateResponse
	if err := a.client.doJSON(httpReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadAvatar replaces the authenticated user's avatar image
func (a *HTTPUserAPI) UploadAvatar(ctx context.Context, file Upload) (*models.User, error) {
	body, contentType, err := fileBody("file", file)
	if err != nil {
		return nil, err
	}
	req, err := a.client.newRequest(ctx, http.MethodPost, "/users/me/avatar", body, contentType)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := a.client.doJSON(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAvatar removes the authenticated user's avatar image
func (a *HTTPUserAPI) DeleteAvatar(ctx context.Context) error {
	req, err := a.client.newRequest(ctx, http.MethodDelete, "/users/me/avatar", nil, "")
	if err != nil {
		return err
	}
	return a.client.doJSON(req, nil)
}
