package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/models"
	"github.com/anonto42/threads-go-client/internal/notify"
)

// Reconciler hides like-toggle latency: it applies a predicted like state to
// the cached snapshots before the request is sent, then either overwrites the
// prediction with the server's authoritative state or rolls back to the
// snapshot captured before the prediction.
//
// Toggles on different IDs run independently. A second toggle on an ID whose
// request is still outstanding is rejected with ErrToggleInFlight; without
// that guard the second invocation would capture a rollback snapshot that
// already contains the first's unresolved prediction.
type Reconciler struct {
	posts    api.PostAPI
	cache    *Cache
	notifier notify.Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	inFlight map[uint]struct{}
}

// NewReconciler creates a new Reconciler
func NewReconciler(posts api.PostAPI, cache *Cache, notifier notify.Notifier, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		posts:    posts,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		inFlight: make(map[uint]struct{}),
	}
}

func (r *Reconciler) begin(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[id]; busy {
		return false
	}
	r.inFlight[id] = struct{}{}
	return true
}

func (r *Reconciler) end(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, id)
}

// ToggleLike runs the predict / send / reconcile-or-rollback sequence for one
// post or reply ID. The prediction is written before the request is sent and
// is never the final state: on success the server's values win, on failure
// the pre-toggle snapshot is restored verbatim.
func (r *Reconciler) ToggleLike(ctx context.Context, id uint) (*models.LikeResult, error) {
	if !r.begin(id) {
		r.logger.Debug("toggle rejected, already in flight", zap.Uint("id", id))
		return nil, ErrToggleInFlight
	}
	defer r.end(id)

	// Pending-predict: capture the rollback snapshot, then publish the
	// predicted one. Snapshots are immutable once published, so holding the
	// old slice is a verbatim copy.
	prev, hadSnapshot := r.cache.Posts()
	predicted := false
	if hadSnapshot {
		if next, ok := patchPosts(prev, id, flipLike); ok {
			r.cache.SetPosts(next)
			predicted = true
		}
	}

	result, err := r.posts.ToggleLike(ctx, id)
	if err != nil {
		// Rollback: discard the prediction entirely.
		if predicted {
			r.cache.SetPosts(prev)
		}
		r.logger.Warn("like toggle failed", zap.Uint("id", id), zap.Error(err))
		r.notifier.Error("Failed to toggle like")
		return nil, err
	}

	r.reconcile(id, *result)

	if result.IsLikedByUser {
		r.notifier.Success("Liked!")
	} else {
		r.notifier.Info("Unliked")
	}
	return result, nil
}

// reconcile writes the authoritative like state over every cached view of the
// entity so all projections converge on the same numbers.
func (r *Reconciler) reconcile(id uint, result models.LikeResult) {
	patch := setLike(result)

	if posts, ok := r.cache.Posts(); ok {
		if next, touched := patchPosts(posts, id, patch); touched {
			r.cache.SetPosts(next)
		}
	}
	for _, userID := range r.cache.ProfileIDs() {
		profile, ok := r.cache.Profile(userID)
		if !ok {
			continue
		}
		if next, touched := patchProfile(profile, id, patch); touched {
			r.cache.SetProfile(userID, next)
		}
	}
}
