package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFallback(t *testing.T) {
	tests := []struct {
		category  Category
		known     bool
		wantClass string
	}{
		{CategoryActivity, true, "badge badge-activity"},
		{CategoryAnnouncement, true, "badge badge-green"},
		{CategoryNews, true, "badge badge-green"},
		{Category("recipes"), false, "badge badge-neutral"},
		{Category(""), false, "badge badge-neutral"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.known, tt.category.Known())
			assert.Equal(t, tt.wantClass, tt.category.BadgeClass())
			// Unknown values display as-is instead of mis-rendering.
			if !tt.known {
				assert.Equal(t, string(tt.category), tt.category.Label())
			}
		})
	}
}

func TestImageObjectKey(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want string
	}{
		{
			name: "stored key wins",
			post: Post{ImageKey: "123-abc.png", ImageURL: "https://x.supabase.co/storage/v1/object/public/post-images/other.png"},
			want: "123-abc.png",
		},
		{
			name: "legacy row derives key from url",
			post: Post{ImageURL: "https://x.supabase.co/storage/v1/object/public/post-images/456-def.jpg"},
			want: "456-def.jpg",
		},
		{
			name: "legacy row with nested key",
			post: Post{ImageURL: "https://x.supabase.co/storage/v1/object/public/post-images/2026/789.jpg"},
			want: "2026/789.jpg",
		},
		{
			name: "no image",
			post: Post{},
			want: "",
		},
		{
			name: "unrecognized url shape",
			post: Post{ImageURL: "https://elsewhere.example/image.png"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.ImageObjectKey())
		})
	}
}
