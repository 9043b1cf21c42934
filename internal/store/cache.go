package store

import (
	"fmt"
	"sync"

	"github.com/anonto42/threads-go-client/internal/models"
)

// Key identifies one cached snapshot
type Key string

// PostsKey is the key of the shared feed snapshot
const PostsKey Key = "posts"

// ProfileKey returns the cache key of a user's profile snapshot
func ProfileKey(userID uint) Key {
	return Key(fmt.Sprintf("profile:%d", userID))
}

// Cache is the single owner of every client-side snapshot. Views read through
// it and subscribe for changes; writers replace whole values or store
// structurally-shared patches, never mutate a published value in place, so a
// subscriber can detect change by comparing references.
type Cache struct {
	mu       sync.RWMutex
	posts    []models.Post
	hasPosts bool
	profiles map[uint]*models.Profile
	subs     []chan Key
}

// NewCache creates a new empty Cache
func NewCache() *Cache {
	return &Cache{profiles: make(map[uint]*models.Profile)}
}

// Posts returns the current feed snapshot. The second result is false before
// the first successful load and after invalidation.
func (c *Cache) Posts() ([]models.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.posts, c.hasPosts
}

// SetPosts replaces the feed snapshot
func (c *Cache) SetPosts(posts []models.Post) {
	c.mu.Lock()
	c.posts = posts
	c.hasPosts = true
	c.mu.Unlock()
	c.notify(PostsKey)
}

// Profile returns a cached profile snapshot, if present
func (c *Cache) Profile(userID uint) (*models.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[userID]
	return p, ok
}

// SetProfile replaces a profile snapshot
func (c *Cache) SetProfile(userID uint, profile *models.Profile) {
	c.mu.Lock()
	c.profiles[userID] = profile
	c.mu.Unlock()
	c.notify(ProfileKey(userID))
}

// ProfileIDs lists the user IDs with a cached profile snapshot
func (c *Cache) ProfileIDs() []uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]uint, 0, len(c.profiles))
	for id := range c.profiles {
		ids = append(ids, id)
	}
	return ids
}

// InvalidatePosts drops the feed snapshot, forcing the next reader to refetch
func (c *Cache) InvalidatePosts() {
	c.mu.Lock()
	c.posts = nil
	c.hasPosts = false
	c.mu.Unlock()
	c.notify(PostsKey)
}

// InvalidateProfile drops one profile snapshot
func (c *Cache) InvalidateProfile(userID uint) {
	c.mu.Lock()
	delete(c.profiles, userID)
	c.mu.Unlock()
	c.notify(ProfileKey(userID))
}

// InvalidateAll drops every snapshot. Used when the viewer identity changes,
// since per-viewer like projections are baked into each snapshot.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.posts = nil
	c.hasPosts = false
	c.profiles = make(map[uint]*models.Profile)
	c.mu.Unlock()
	c.notify(PostsKey)
}

// Subscribe returns a channel that receives the key of every snapshot write.
// Sends never block; a slow subscriber misses intermediate notifications but
// always sees the latest state when it next reads.
func (c *Cache) Subscribe() <-chan Key {
	ch := make(chan Key, 16)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

func (c *Cache) notify(key Key) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- key:
		default:
		}
	}
}
