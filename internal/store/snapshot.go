package store

import "github.com/anonto42/threads-go-client/internal/models"

// likePatch rewrites the like state of one entity. It receives the entity's
// current state and returns the state to store.
type likePatch func(liked bool, count int) (bool, int)

// flipLike is the optimistic prediction: the new count is derived from the
// previous boolean, never taken from the server, which alone can account for
// concurrent likes by other viewers.
func flipLike(liked bool, count int) (bool, int) {
	if liked {
		return false, count - 1
	}
	return true, count + 1
}

// setLike writes the authoritative state returned by the server
func setLike(result models.LikeResult) likePatch {
	return func(bool, int) (bool, int) {
		return result.IsLikedByUser, result.LikesCount
	}
}

// patchPosts returns a copy of posts with the patch applied to the entity
// with the given ID, which may be a top-level post or a reply nested in any
// post's reply list (IDs are not namespaced by type). Untouched posts are
// shared with the input slice. The second result reports whether the ID was
// found; at most one entity is rewritten.
func patchPosts(posts []models.Post, id uint, patch likePatch) ([]models.Post, bool) {
	for i := range posts {
		if posts[i].ID == id {
			out := make([]models.Post, len(posts))
			copy(out, posts)
			p := posts[i]
			p.IsLikedByUser, p.LikesCount = patch(p.IsLikedByUser, p.LikesCount)
			out[i] = p
			return out, true
		}
		if replies, ok := patchReplies(posts[i].Replies, id, patch); ok {
			out := make([]models.Post, len(posts))
			copy(out, posts)
			p := posts[i]
			p.Replies = replies
			out[i] = p
			return out, true
		}
	}
	return posts, false
}

// patchReplies returns a copy of replies with the patch applied to the reply
// with the given ID, or the input unchanged when the ID is absent.
func patchReplies(replies []models.Reply, id uint, patch likePatch) ([]models.Reply, bool) {
	for i := range replies {
		if replies[i].ID == id {
			out := make([]models.Reply, len(replies))
			copy(out, replies)
			r := replies[i]
			r.IsLikedByUser, r.LikesCount = patch(r.IsLikedByUser, r.LikesCount)
			out[i] = r
			return out, true
		}
	}
	return replies, false
}

// patchProfile returns a copy of the profile with the patch applied to the
// entity wherever it appears: the profile's post list, those posts' reply
// lists, or the profile's own comments list.
func patchProfile(profile *models.Profile, id uint, patch likePatch) (*models.Profile, bool) {
	touched := false
	out := *profile

	if posts, ok := patchPosts(profile.Posts, id, patch); ok {
		out.Posts = posts
		touched = true
	}
	if comments, ok := patchReplies(profile.Comments, id, patch); ok {
		out.Comments = comments
		touched = true
	}
	if !touched {
		return profile, false
	}
	return &out, true
}
