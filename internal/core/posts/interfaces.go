package posts

import "context"

// Service defines the post repository consumed by the web layer.
// It layers domain semantics over the gateway client: canonical ordering,
// read-path degradation, and delete-with-asset-cleanup.
type Service interface {
	// Refresh performs a full re-fetch of the collection, ordered by
	// created_at descending. There is no incremental sync; the expected
	// collection size is small. Gateway failures degrade to an empty
	// result (logged, not returned) so listing pages never break.
	Refresh(ctx context.Context) []Post

	// Find resolves a single post by id. Returns ErrNotFound when the id
	// is absent so callers can redirect away from an invalid detail view.
	Find(ctx context.Context, id int64) (*Post, error)

	// Create validates the request and inserts a new post. The store
	// assigns id and created_at.
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)

	// Delete removes a post record. If imageKey is non-empty the stored
	// image is deleted first, best-effort: an asset-delete failure is
	// logged and swallowed, never blocking record deletion.
	Delete(ctx context.Context, id int64, imageKey string) error
}
