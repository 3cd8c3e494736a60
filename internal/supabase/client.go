// Package supabase provides a thin client for the hosted Supabase project
// backing the site: the PostgREST table API for the posts table and the
// Storage object API for uploaded images. It is the only package that talks
// to the network; services above it consume the Client interface.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client provides access to the hosted posts table and image bucket.
// Services depend on this interface so tests can substitute a fake.
type Client interface {
	// ListPosts returns every post record, newest first (ordered by the store).
	ListPosts(ctx context.Context) ([]PostRecord, error)

	// GetPost retrieves a single post by id. Returns ErrNotFound if no row matches.
	GetPost(ctx context.Context, id int64) (*PostRecord, error)

	// InsertPost creates a new post row and returns the stored record,
	// with id and created_at assigned by the store.
	InsertPost(ctx context.Context, params InsertPostParams) (*PostRecord, error)

	// DeletePost removes a post row. Deleting a non-existent id is not an error.
	DeletePost(ctx context.Context, id int64) error

	// UploadObject stores binary data in the image bucket under the given key.
	UploadObject(ctx context.Context, key, contentType string, data []byte) error

	// DeleteObject removes an object from the image bucket. Best-effort for
	// callers; deleting a non-existent key is not an error they must distinguish.
	DeleteObject(ctx context.Context, key string) error

	// PublicURL returns the stable public address of a stored object.
	// No network call is made.
	PublicURL(key string) string
}

// PostRecord is the wire shape of a row in the posts table.
// Field names match the column names used by the original project.
type PostRecord struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  *string   `json:"image_url,omitempty"`
	ImageKey  *string   `json:"image_key,omitempty"`
	LinkURL   *string   `json:"link_url,omitempty"`
}

// InsertPostParams holds the caller-supplied columns for a new post row.
// id and created_at are assigned by the store.
type InsertPostParams struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
	ImageKey *string `json:"image_key,omitempty"`
	LinkURL  *string `json:"link_url,omitempty"`
}

// Config holds the project endpoint and the public (non-secret) API key.
type Config struct {
	// BaseURL is the project endpoint, e.g. https://xyzcompany.supabase.co
	BaseURL string
	// AnonKey is the publishable API key sent on every request.
	AnonKey string
	// Bucket is the storage bucket holding uploaded post images.
	Bucket string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout bounds gateway requests when Config.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// client implements the Client interface over net/http.
type client struct {
	http    *http.Client
	baseURL string
	anonKey string
	bucket  string
}

// Ensure client implements Client interface.
var _ Client = (*client)(nil)

// New creates a gateway client for the configured project.
func New(cfg Config) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("supabase: BaseURL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase: AnonKey is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("supabase: Bucket is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		anonKey: cfg.AnonKey,
		bucket:  cfg.Bucket,
	}, nil
}

// errorBody is the error envelope returned by both PostgREST and the Storage API.
type errorBody struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

// wrapStatusError maps an HTTP error status to a typed error, keeping the
// remote human-readable message so admin pages can surface it.
func wrapStatusError(operation string, status int, message string) error {
	var sentinel error
	switch status {
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusNotAcceptable:
		// PostgREST answers 406 when a single-object request matches no rows.
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusRequestEntityTooLarge:
		sentinel = ErrPayloadTooLarge
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", operation, status, message)
	}
	if message == "" {
		return fmt.Errorf("%s: %w", operation, sentinel)
	}
	return fmt.Errorf("%s: %w: %s", operation, sentinel, message)
}

// do executes a request with auth headers applied and decodes a JSON
// response into out when out is non-nil.
func (c *client) do(req *http.Request, operation string, out any) error {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		message := ""
		if json.Unmarshal(body, &eb) == nil {
			message = eb.Message
			if message == "" {
				message = eb.Msg
			}
		}
		if message == "" {
			message = strings.TrimSpace(string(body))
		}
		return wrapStatusError(operation, resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", operation, err)
	}
	return nil
}

// restURL builds a PostgREST URL for the posts table.
func (c *client) restURL(query string) string {
	return c.baseURL + "/rest/v1/posts?" + query
}

// objectURL builds a Storage API URL for an object in the image bucket.
func (c *client) objectURL(key string) string {
	return c.baseURL + "/storage/v1/object/" + c.bucket + "/" + key
}

// ListPosts returns every post record, newest first.
func (c *client) ListPosts(ctx context.Context) ([]PostRecord, error) {
	url := c.restURL("select=*&order=created_at.desc")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("listPosts: %w", err)
	}

	var records []PostRecord
	if err := c.do(req, "listPosts", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetPost retrieves a single post by id.
func (c *client) GetPost(ctx context.Context, id int64) (*PostRecord, error) {
	url := c.restURL(fmt.Sprintf("select=*&id=eq.%d", id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("getPost: %w", err)
	}
	// Ask PostgREST for exactly one object; zero rows becomes a 406.
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")

	var record PostRecord
	if err := c.do(req, "getPost", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// InsertPost creates a new post row and returns the stored record.
func (c *client) InsertPost(ctx context.Context, params InsertPostParams) (*PostRecord, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("insertPost: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL("select=*"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("insertPost: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	req.Header.Set("Prefer", "return=representation")

	var record PostRecord
	if err := c.do(req, "insertPost", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeletePost removes a post row.
func (c *client) DeletePost(ctx context.Context, id int64) error {
	url := c.restURL(fmt.Sprintf("id=eq.%d", id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("deletePost: %w", err)
	}
	return c.do(req, "deletePost", nil)
}

// UploadObject stores binary data in the image bucket.
func (c *client) UploadObject(ctx context.Context, key, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("uploadObject: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, "uploadObject", nil)
}

// DeleteObject removes an object from the image bucket.
func (c *client) DeleteObject(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(key), nil)
	if err != nil {
		return fmt.Errorf("deleteObject: %w", err)
	}
	return c.do(req, "deleteObject", nil)
}

// PublicURL returns the stable public address of a stored object.
func (c *client) PublicURL(key string) string {
	return c.baseURL + "/storage/v1/object/public/" + c.bucket + "/" + key
}
