package store

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/models"
	"github.com/anonto42/threads-go-client/internal/notify"
	"github.com/anonto42/threads-go-client/internal/session"
)

// ConfirmFunc asks the user a blocking yes/no question before a destructive
// action proceeds.
type ConfirmFunc func(prompt string) bool

// Dispatcher translates user intents into exactly one network request each
// and defines what happens to the cached snapshots before and after. Only the
// like toggle is optimistic; every other mutation waits for the server and
// then invalidates the affected snapshots, since server-assigned IDs and
// timestamps cannot be guessed locally.
type Dispatcher struct {
	posts      api.PostAPI
	cache      *Cache
	session    *session.Session
	reconciler *Reconciler
	notifier   notify.Notifier
	validate   *validator.Validate
	logger     *zap.Logger

	// Transient per-post view state (open context menus), cleared when the
	// post it belongs to is deleted.
	menuMu    sync.Mutex
	openMenus map[uint]bool
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(posts api.PostAPI, cache *Cache, sess *session.Session, reconciler *Reconciler, notifier notify.Notifier, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		posts:      posts,
		cache:      cache,
		session:    sess,
		reconciler: reconciler,
		notifier:   notifier,
		validate:   validator.New(),
		logger:     logger,
		openMenus:  make(map[uint]bool),
	}
}

// requireSession rejects mutations from anonymous viewers. The view layer
// gates these intents first; this check backs it up so no mutating request
// is ever attempted without a session even when the gate is bypassed.
func (d *Dispatcher) requireSession() error {
	if !d.session.Authenticated() {
		return session.ErrNoSession
	}
	return nil
}

// invalidateOwn drops the feed snapshot and the acting user's profile
// snapshot after a mutation whose effect cannot be predicted locally.
func (d *Dispatcher) invalidateOwn() {
	d.cache.InvalidatePosts()
	if user := d.session.CurrentUser(); user != nil {
		d.cache.InvalidateProfile(user.ID)
	}
}

// CreatePost creates a new post. Non-optimistic: the UI shows the post only
// after the forced refetch returns it with its server-assigned identity.
func (d *Dispatcher) CreatePost(ctx context.Context, text string, image *api.Upload) (*models.Post, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	if err := d.validate.Struct(models.CreatePostRequest{Text: text}); err != nil {
		d.notifier.Error("Post text must be between 1 and 500 characters")
		return nil, err
	}

	post, err := d.posts.Create(ctx, text, image)
	if err != nil {
		d.logger.Warn("create post failed", zap.Error(err))
		d.notifier.Error(friendlyMessage(err, "Failed to create post"))
		return nil, err
	}

	d.invalidateOwn()
	d.notifier.Success("Post created!")
	return post, nil
}

// UpdatePost replaces a post's text. Ownership is enforced server-side; an
// unauthorized edit comes back as an error and nothing local changes.
func (d *Dispatcher) UpdatePost(ctx context.Context, id uint, newText string) (*models.Post, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	if err := d.validate.Struct(models.UpdatePostRequest{Text: newText}); err != nil {
		d.notifier.Error("Post text must be between 1 and 500 characters")
		return nil, err
	}

	post, err := d.posts.Update(ctx, id, newText)
	if err != nil {
		d.logger.Warn("update post failed", zap.Uint("id", id), zap.Error(err))
		d.notifier.Error(friendlyMessage(err, "Failed to update post"))
		return nil, err
	}

	d.cache.InvalidatePosts()
	d.cache.InvalidateProfile(post.Owner.ID)
	d.notifier.Success("Post updated!")
	return post, nil
}

// DeletePost removes a post after the user confirms. A declined confirmation
// returns ErrCancelled with no request sent and no snapshot touched.
func (d *Dispatcher) DeletePost(ctx context.Context, id uint, confirm ConfirmFunc) error {
	if err := d.requireSession(); err != nil {
		return err
	}
	if confirm != nil && !confirm("Are you sure you want to delete this post?") {
		return ErrCancelled
	}

	if err := d.posts.Delete(ctx, id); err != nil {
		d.logger.Warn("delete post failed", zap.Uint("id", id), zap.Error(err))
		d.notifier.Error(friendlyMessage(err, "Failed to delete post"))
		return err
	}

	d.invalidateOwn()
	d.CloseMenu(id)
	d.notifier.Success("Post deleted")
	return nil
}

// CreateReply creates a comment under a parent post. Same non-optimistic
// contract as CreatePost.
func (d *Dispatcher) CreateReply(ctx context.Context, postID uint, text string, image *api.Upload) (*models.Reply, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	if err := d.validate.Struct(models.CreatePostRequest{Text: text}); err != nil {
		d.notifier.Error("Comment text must be between 1 and 500 characters")
		return nil, err
	}

	reply, err := d.posts.CreateReply(ctx, postID, text, image)
	if err != nil {
		d.logger.Warn("create reply failed", zap.Uint("post_id", postID), zap.Error(err))
		d.notifier.Error(friendlyMessage(err, "Failed to add comment"))
		return nil, err
	}

	// Resolve the parent's owner before the snapshot is dropped
	owner := d.postOwner(postID)
	d.invalidateOwn()
	if owner != 0 {
		d.cache.InvalidateProfile(owner)
	}
	d.notifier.Success("Comment added!")
	return reply, nil
}

// ToggleLike flips the viewer's like on a post or reply, optimistically
func (d *Dispatcher) ToggleLike(ctx context.Context, id uint) (*models.LikeResult, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	return d.reconciler.ToggleLike(ctx, id)
}

// ToggleMenu flips the transient open state of a post's context menu
func (d *Dispatcher) ToggleMenu(id uint) {
	d.menuMu.Lock()
	defer d.menuMu.Unlock()
	d.openMenus[id] = !d.openMenus[id]
}

// MenuOpen reports whether a post's context menu is open
func (d *Dispatcher) MenuOpen(id uint) bool {
	d.menuMu.Lock()
	defer d.menuMu.Unlock()
	return d.openMenus[id]
}

// CloseMenu clears the transient menu state keyed by a post ID
func (d *Dispatcher) CloseMenu(id uint) {
	d.menuMu.Lock()
	defer d.menuMu.Unlock()
	delete(d.openMenus, id)
}

// postOwner resolves a post's owner from the current snapshot, 0 if unknown
func (d *Dispatcher) postOwner(postID uint) uint {
	posts, ok := d.cache.Posts()
	if !ok {
		return 0
	}
	for i := range posts {
		if posts[i].ID == postID {
			return posts[i].Owner.ID
		}
	}
	return 0
}

// friendlyMessage prefers the server's own error detail over the fallback
func friendlyMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && (apiErr.Detail != "" || len(apiErr.Fields) > 0) {
		return apiErr.Error()
	}
	return fallback
}
