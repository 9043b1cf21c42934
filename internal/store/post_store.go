package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/models"
)

// PostStore maintains the feed snapshot used by every view. Loading is
// explicit; a failed load leaves the previous snapshot in place and surfaces
// the error without retrying.
type PostStore struct {
	posts  api.PostAPI
	cache  *Cache
	group  singleflight.Group
	logger *zap.Logger
}

// NewPostStore creates a new PostStore
func NewPostStore(posts api.PostAPI, cache *Cache, logger *zap.Logger) *PostStore {
	return &PostStore{posts: posts, cache: cache, logger: logger}
}

// Load fetches the post collection and replaces the feed snapshot. The bearer
// token attached by the API client determines whose like projections the
// server fills in. Concurrent calls are collapsed into one request.
func (s *PostStore) Load(ctx context.Context) ([]models.Post, error) {
	v, err, _ := s.group.Do(string(PostsKey), func() (interface{}, error) {
		posts, err := s.posts.List(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetPosts(posts)
		return posts, nil
	})
	if err != nil {
		s.logger.Warn("feed load failed", zap.Error(err))
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	posts := v.([]models.Post)
	s.logger.Debug("feed loaded", zap.Int("posts", len(posts)))
	return posts, nil
}

// Posts returns the current feed snapshot, loading it first if no snapshot
// exists yet.
func (s *PostStore) Posts(ctx context.Context) ([]models.Post, error) {
	if posts, ok := s.cache.Posts(); ok {
		return posts, nil
	}
	return s.Load(ctx)
}
