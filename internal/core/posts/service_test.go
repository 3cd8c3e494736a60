package posts

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Greenfactor/internal/supabase"
)

// fakeGateway is an in-memory stand-in for the hosted store.
type fakeGateway struct {
	records []supabase.PostRecord
	nextID  int64

	listErr         error
	insertErr       error
	deletePostErr   error
	deleteObjectErr error

	insertCalls    int
	deletedObjects []string
}

var _ supabase.Client = (*fakeGateway)(nil)

func (f *fakeGateway) ListPosts(ctx context.Context) ([]supabase.PostRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]supabase.PostRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeGateway) GetPost(ctx context.Context, id int64) (*supabase.PostRecord, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			r := rec
			return &r, nil
		}
	}
	return nil, fmt.Errorf("getPost: %w", supabase.ErrNotFound)
}

func (f *fakeGateway) InsertPost(ctx context.Context, params supabase.InsertPostParams) (*supabase.PostRecord, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	rec := supabase.PostRecord{
		ID:        f.nextID,
		Title:     params.Title,
		Category:  params.Category,
		Content:   params.Content,
		CreatedAt: time.Now(),
		ImageURL:  params.ImageURL,
		ImageKey:  params.ImageKey,
		LinkURL:   params.LinkURL,
	}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeGateway) DeletePost(ctx context.Context, id int64) error {
	if f.deletePostErr != nil {
		return f.deletePostErr
	}
	kept := f.records[:0]
	for _, rec := range f.records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeGateway) UploadObject(ctx context.Context, key, contentType string, data []byte) error {
	return nil
}

func (f *fakeGateway) DeleteObject(ctx context.Context, key string) error {
	if f.deleteObjectErr != nil {
		return f.deleteObjectErr
	}
	f.deletedObjects = append(f.deletedObjects, key)
	return nil
}

func (f *fakeGateway) PublicURL(key string) string {
	return "https://example.supabase.co/storage/v1/object/public/post-images/" + key
}

func record(id int64, title string, createdAt time.Time) supabase.PostRecord {
	return supabase.PostRecord{
		ID:        id,
		Title:     title,
		Category:  "news",
		Content:   "content",
		CreatedAt: createdAt,
	}
}

func TestRefreshOrdersByCreatedAtDescending(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{records: []supabase.PostRecord{
		record(1, "oldest", base.Add(-48*time.Hour)),
		record(2, "newest", base),
		record(3, "middle", base.Add(-24*time.Hour)),
	}}
	svc := NewService(gw)

	result := svc.Refresh(context.Background())
	require.Len(t, result, 3)
	assert.Equal(t, "newest", result[0].Title)
	assert.Equal(t, "middle", result[1].Title)
	assert.Equal(t, "oldest", result[2].Title)
}

func TestRefreshDegradesToEmptyOnGatewayError(t *testing.T) {
	gw := &fakeGateway{listErr: errors.New("gateway unreachable")}
	svc := NewService(gw)

	result := svc.Refresh(context.Background())
	assert.Empty(t, result)
}

func TestCreateThenRefreshIncludesNewPostInOrder(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{
		records: []supabase.PostRecord{record(1, "existing", base.Add(-time.Hour))},
		nextID:  1,
	}
	svc := NewService(gw)

	created, err := svc.Create(context.Background(), CreatePostRequest{
		Title:    "Spring Hike",
		Category: CategoryActivity,
		Content:  "Meet at 9am.\nBring water.",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	result := svc.Refresh(context.Background())
	require.Len(t, result, 2)
	assert.Equal(t, "Spring Hike", result[0].Title)
	assert.Equal(t, CategoryActivity, result[0].Category)
	assert.Equal(t, "Meet at 9am.\nBring water.", result[0].Content)
}

func TestFindReturnsNotFoundForUnknownID(t *testing.T) {
	svc := NewService(&fakeGateway{})

	_, err := svc.Find(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindReturnsPost(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{records: []supabase.PostRecord{record(5, "hello", base)}}
	svc := NewService(gw)

	post, err := svc.Find(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.ID)
	assert.Equal(t, "hello", post.Title)
}

func TestCreateBlocksMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		req  CreatePostRequest
	}{
		{name: "empty title", req: CreatePostRequest{Category: CategoryNews, Content: "c"}},
		{name: "empty category", req: CreatePostRequest{Title: "t", Content: "c"}},
		{name: "empty content", req: CreatePostRequest{Title: "t", Category: CategoryNews}},
		{name: "whitespace title", req: CreatePostRequest{Title: "   ", Category: CategoryNews, Content: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc := NewService(gw)

			_, err := svc.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Zero(t, gw.insertCalls, "validation failure must not reach the gateway")
		})
	}
}

func TestDeleteRemovesAssetThenRecord(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{records: []supabase.PostRecord{record(3, "with image", base)}}
	svc := NewService(gw)

	require.NoError(t, svc.Delete(context.Background(), 3, "123-abc.png"))
	assert.Equal(t, []string{"123-abc.png"}, gw.deletedObjects)
	assert.Empty(t, svc.Refresh(context.Background()))
}

func TestDeleteSwallowsAssetFailure(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{
		records:         []supabase.PostRecord{record(3, "with image", base)},
		deleteObjectErr: errors.New("storage unavailable"),
	}
	svc := NewService(gw)

	// Asset cleanup failure must not block record deletion.
	require.NoError(t, svc.Delete(context.Background(), 3, "123-abc.png"))
	assert.Empty(t, svc.Refresh(context.Background()))
}

func TestDeleteSurfacesRecordFailure(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{
		records:       []supabase.PostRecord{record(3, "sticky", base)},
		deletePostErr: errors.New("permission denied"),
	}
	svc := NewService(gw)

	err := svc.Delete(context.Background(), 3, "")
	require.Error(t, err)

	// The post must still appear after a failed record delete.
	result := svc.Refresh(context.Background())
	require.Len(t, result, 1)
	assert.Equal(t, "sticky", result[0].Title)
}

func TestDeleteWithoutImageSkipsAssetCleanup(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{records: []supabase.PostRecord{record(4, "plain", base)}}
	svc := NewService(gw)

	require.NoError(t, svc.Delete(context.Background(), 4, ""))
	assert.Empty(t, gw.deletedObjects)
}
