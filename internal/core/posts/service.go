package posts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"Greenfactor/internal/supabase"
)

type service struct {
	gateway supabase.Client
}

// NewService creates a post repository backed by the gateway client.
func NewService(gateway supabase.Client) Service {
	return &service{gateway: gateway}
}

// Refresh performs a full re-fetch of the post collection.
func (s *service) Refresh(ctx context.Context) []Post {
	records, err := s.gateway.ListPosts(ctx)
	if err != nil {
		// Read path degrades to an empty listing instead of failing the page.
		slog.Error("failed to refresh posts, serving empty list", "error", err)
		return nil
	}

	result := make([]Post, len(records))
	for i, rec := range records {
		result[i] = fromRecord(rec)
	}

	// Canonical order is recomputed on every load, not trusted from the wire.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Find resolves a single post by id.
func (s *service) Find(ctx context.Context, id int64) (*Post, error) {
	record, err := s.gateway.GetPost(ctx, id)
	if err != nil {
		if supabase.IsNotFound(err) {
			return nil, fmt.Errorf("find post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	post := fromRecord(*record)
	return &post, nil
}

// Create validates the request and inserts a new post.
func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.gateway.InsertPost(ctx, req.params())
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post := fromRecord(*record)
	return &post, nil
}

// Delete removes a post record, cleaning up its stored image first.
func (s *service) Delete(ctx context.Context, id int64, imageKey string) error {
	if imageKey != "" {
		if err := s.gateway.DeleteObject(ctx, imageKey); err != nil {
			// Orphaned objects are acceptable; record removal takes priority.
			slog.Warn("failed to delete post image, continuing",
				"post_id", id, "image_key", imageKey, "error", err)
		}
	}

	if err := s.gateway.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}
