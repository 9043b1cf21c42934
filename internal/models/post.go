package models

import "time"

// Post represents a top-level post as served by GET /posts/
type Post struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Owner         User      `json:"owner"`
	Replies       []Reply   `json:"replies"`
	LikesCount    int       `json:"likes_count"`
	IsLikedByUser bool      `json:"is_liked_by_user"` // Per-viewer projection, depends on the bearer token sent
}

// Reply represents a comment scoped to a single parent post. Reply IDs share
// the post ID namespace, so a like addressed by ID may hit either kind.
type Reply struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Owner         User      `json:"owner"`
	LikesCount    int       `json:"likes_count"`
	IsLikedByUser bool      `json:"is_liked_by_user"`
}

// LikeResult is the authoritative like state returned by POST /posts/{id}/like
type LikeResult struct {
	IsLikedByUser bool `json:"is_liked_by_user"`
	LikesCount    int  `json:"likes_count"`
}

// CreatePostRequest defines the fields for creating a new post or reply
type CreatePostRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// UpdatePostRequest defines the fields for editing an existing post
type UpdatePostRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
