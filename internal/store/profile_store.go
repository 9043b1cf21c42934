package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/models"
)

// ErrProfileNotFound distinguishes a missing user from a failed fetch so the
// view can render an explicit "not found" state.
var ErrProfileNotFound = fmt.Errorf("user not found")

// ProfileStore maintains per-user profile snapshots
type ProfileStore struct {
	users  api.UserAPI
	cache  *Cache
	group  singleflight.Group
	logger *zap.Logger
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(users api.UserAPI, cache *Cache, logger *zap.Logger) *ProfileStore {
	return &ProfileStore{users: users, cache: cache, logger: logger}
}

// Load fetches a profile and replaces its snapshot. A 404 is mapped to
// ErrProfileNotFound; any other failure leaves the snapshot unchanged.
func (s *ProfileStore) Load(ctx context.Context, userID uint) (*models.Profile, error) {
	v, err, _ := s.group.Do(string(ProfileKey(userID)), func() (interface{}, error) {
		profile, err := s.users.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.cache.SetProfile(userID, profile)
		return profile, nil
	})
	if err != nil {
		if api.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		s.logger.Warn("profile load failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("loading profile %d: %w", userID, err)
	}
	return v.(*models.Profile), nil
}

// Profile returns the cached profile snapshot, loading it first if absent
func (s *ProfileStore) Profile(ctx context.Context, userID uint) (*models.Profile, error) {
	if profile, ok := s.cache.Profile(userID); ok {
		return profile, nil
	}
	return s.Load(ctx, userID)
}
