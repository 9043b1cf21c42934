package models

// Profile is the expanded user view served by GET /users/{id}, carrying the
// user's own posts and comments alongside aggregate counts.
type Profile struct {
	ID            uint    `json:"id"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	Posts         []Post  `json:"posts"`
	Comments      []Reply `json:"comments"`
	PostsCount    int     `json:"posts_count"`
	CommentsCount int     `json:"comments_count"`
}
