package posts

import (
	"strings"
	"time"

	"Greenfactor/internal/supabase"
)

// Category labels a post. The store column is free text, so the set is
// closed only by convention: the admin form offers the three known values,
// but rows written by other clients may carry anything. Unknown values
// render through the neutral fallback instead of being rejected.
type Category string

const (
	CategoryActivity     Category = "activity"
	CategoryAnnouncement Category = "announcement"
	CategoryNews         Category = "news"
)

// Known reports whether the category is one of the recognized values.
func (c Category) Known() bool {
	switch c {
	case CategoryActivity, CategoryAnnouncement, CategoryNews:
		return true
	}
	return false
}

// Label returns the display label for the category.
// Unrecognized values display as-is.
func (c Category) Label() string {
	switch c {
	case CategoryActivity:
		return "活動"
	case CategoryAnnouncement:
		return "公告"
	case CategoryNews:
		return "最新消息"
	}
	return string(c)
}

// BadgeClass returns the CSS class for the category badge.
// Unrecognized values get a neutral style rather than mis-rendering.
func (c Category) BadgeClass() string {
	switch c {
	case CategoryActivity:
		return "badge badge-activity"
	case CategoryAnnouncement, CategoryNews:
		return "badge badge-green"
	}
	return "badge badge-neutral"
}

// Post represents a single published news/announcement record.
// Posts are immutable once created; the only mutations are create and delete.
type Post struct {
	ID        int64
	Title     string
	Category  Category
	Content   string
	CreatedAt time.Time
	// ImageURL is the public address of the uploaded image, empty if none.
	ImageURL string
	// ImageKey is the storage object key of the uploaded image. Stored
	// alongside the URL so deletion doesn't have to re-derive the key by
	// splitting the URL. Empty for posts without an image and possibly for
	// rows written before the column existed.
	ImageKey string
	// LinkURL is an optional external call-to-action address, empty if none.
	LinkURL string
}

// HasImage reports whether the post carries an uploaded image.
func (p Post) HasImage() bool { return p.ImageURL != "" }

// HasLink reports whether the post carries an external link.
func (p Post) HasLink() bool { return p.LinkURL != "" }

// DateLabel returns the creation date for display, without the time part.
func (p Post) DateLabel() string { return p.CreatedAt.Format("2006-01-02") }

// publicObjectMarker separates a storage public URL's prefix from the
// bucket and object key segments.
const publicObjectMarker = "/object/public/"

// ImageObjectKey returns the storage key of the post's image, or "" when
// the post has none. Prefers the stored key; falls back to splitting the
// public URL for rows that predate the image_key column.
func (p Post) ImageObjectKey() string {
	if p.ImageKey != "" {
		return p.ImageKey
	}
	if p.ImageURL == "" {
		return ""
	}
	_, rest, ok := strings.Cut(p.ImageURL, publicObjectMarker)
	if !ok {
		return ""
	}
	// rest is "<bucket>/<key...>"; drop the bucket segment.
	_, key, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	return key
}

// CreatePostRequest represents input for creating a new post.
type CreatePostRequest struct {
	Title    string
	Category Category
	Content  string
	ImageURL string
	ImageKey string
	LinkURL  string
}

// Validate checks the required fields. Title, category and content must be
// non-empty; image and link are optional.
func (r CreatePostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(string(r.Category)) == "" {
		return NewValidationError("category", "category is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return NewValidationError("content", "content is required")
	}
	return nil
}

// params converts the request to the gateway's insert shape.
func (r CreatePostRequest) params() supabase.InsertPostParams {
	return supabase.InsertPostParams{
		Title:    r.Title,
		Category: string(r.Category),
		Content:  r.Content,
		ImageURL: optional(r.ImageURL),
		ImageKey: optional(r.ImageKey),
		LinkURL:  optional(r.LinkURL),
	}
}

// fromRecord converts a gateway record to the domain type.
func fromRecord(rec supabase.PostRecord) Post {
	return Post{
		ID:        rec.ID,
		Title:     rec.Title,
		Category:  Category(rec.Category),
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		ImageURL:  deref(rec.ImageURL),
		ImageKey:  deref(rec.ImageKey),
		LinkURL:   deref(rec.LinkURL),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
