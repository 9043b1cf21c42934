package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/anonto42/threads-go-client/internal/models"
)

// PostAPI defines the interface for remote post operations
type PostAPI interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, text string, image *Upload) (*models.Post, error)
	Update(ctx context.Context, id uint, newText string) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, id uint) (*models.LikeResult, error)
	CreateReply(ctx context.Context, postID uint, text string, image *Upload) (*models.Reply, error)
}

// HTTPPostAPI implements PostAPI against the remote server
type HTTPPostAPI struct {
	client *Client
}

// NewHTTPPostAPI creates a new HTTPPostAPI
func NewHTTPPostAPI(client *Client) *HTTPPostAPI {
	return &HTTPPostAPI{client: client}
}

// List retrieves all posts with nested replies. The bearer token, when
// present, makes the server populate per-viewer like state.
func (a *HTTPPostAPI) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := a.client.getJSON(ctx, "/posts/", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Create creates a new post from multipart form data
func (a *HTTPPostAPI) Create(ctx context.Context, text string, image *Upload) (*models.Post, error) {
	body, contentType, err := multipartBody(text, image)
	if err != nil {
		return nil, err
	}
	req, err := a.client.newRequest(ctx, http.MethodPost, "/posts/", body, contentType)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := a.client.doJSON(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces a post's text. The server enforces ownership.
func (a *HTTPPostAPI) Update(ctx context.Context, id uint, newText string) (*models.Post, error) {
	path := fmt.Sprintf("/posts/%d?new_text=%s", id, url.QueryEscape(newText))
	req, err := a.client.newRequest(ctx, http.MethodPut, path, nil, "")
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := a.client.doJSON(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post. The server answers 200 or 204 on success.
func (a *HTTPPostAPI) Delete(ctx context.Context, id uint) error {
	req, err := a.client.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, "")
	if err != nil {
		return err
	}
	return a.client.doJSON(req, nil)
}

// ToggleLike flips the viewer's like on a post or reply and returns the
// authoritative like state. IDs of posts and replies share one namespace,
// so the same endpoint serves both.
func (a *HTTPPostAPI) ToggleLike(ctx context.Context, id uint) (*models.LikeResult, error) {
	req, err := a.client.newRequest(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), nil, "")
	if err != nil {
		return nil, err
	}
	var result models.LikeResult
	if err := a.client.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateReply creates a comment under a parent post from multipart form data
func (a *HTTPPostAPI) CreateReply(ctx context.Context, postID uint, text string, image *Upload) (*models.Reply, error) {
	body, contentType, err := multipartBody(text, image)
	if err != nil {
		return nil, err
	}
	req, err := a.client.newRequest(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/replies", postID), body, contentType)
	if err != nil {
		return nil, err
	}
	var reply models.Reply
	if err := a.client.doJSON(req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
