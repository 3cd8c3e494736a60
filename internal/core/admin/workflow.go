// Package admin implements the operator-facing side of the site: the entry
// gate and the edit workflow that composes, validates and publishes a draft
// post. All post mutations (create, delete) go through this package.
package admin

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"Greenfactor/internal/core/posts"
	"Greenfactor/internal/supabase"
)

// MaxImageSize is the staging cap for uploaded images (5 MiB). Larger
// files are rejected before any upload call is made.
const MaxImageSize = 5 << 20

// State identifies where the workflow is in its lifecycle.
type State string

const (
	// StateIdle means no draft exists.
	StateIdle State = "idle"
	// StateEditing means a draft is being composed.
	StateEditing State = "editing"
	// StateSubmitting means a submit is in flight. Transient: the workflow
	// returns to Idle on success or Editing on failure.
	StateSubmitting State = "submitting"
)

// StagedImage is a locally selected file pending upload. The preview
// handle is a local identifier, distinct from the eventual public URL,
// and is released when the image is removed or the draft is discarded.
type StagedImage struct {
	Name        string
	ContentType string
	Data        []byte
	Preview     string
}

// Draft is an in-progress, unsaved edit of a prospective post. It is
// destroyed on submit-success or cancel, and kept intact on submit-failure
// so the operator can retry without re-entering anything.
type Draft struct {
	Title    string
	Category posts.Category
	Content  string
	LinkURL  string
	Image    *StagedImage
}

// Workflow drives a single admin editing session: Idle -> Editing ->
// Submitting -> (Idle on success | Editing on failure). A workflow is
// constructed per view-activation and discarded afterwards; it is not
// safe for concurrent use and never has more than one submit in flight.
type Workflow struct {
	gateway supabase.Client
	posts   posts.Service
	state   State
	draft   *Draft

	// now is replaceable in tests so generated object keys are stable.
	now func() time.Time
}

// NewWorkflow creates an idle workflow over the gateway and post repository.
func NewWorkflow(gateway supabase.Client, repo posts.Service) *Workflow {
	return &Workflow{
		gateway: gateway,
		posts:   repo,
		state:   StateIdle,
		now:     time.Now,
	}
}

// State returns the workflow's current state.
func (w *Workflow) State() State { return w.state }

// Draft returns the draft being edited, or nil when idle.
func (w *Workflow) Draft() *Draft { return w.draft }

// Begin starts editing a fresh draft. The category is pre-populated so the
// required field is never empty absent operator action.
func (w *Workflow) Begin() *Draft {
	w.draft = &Draft{Category: posts.CategoryActivity}
	w.state = StateEditing
	return w.draft
}

// Cancel discards the draft and any staged image.
func (w *Workflow) Cancel() {
	w.draft = nil
	w.state = StateIdle
}

// StageImage validates and stages an image file on the draft. Files that
// are not images, or exceed MaxImageSize, are rejected before staging and
// a previously staged file is left untouched. Staging produces a local
// preview handle; no upload happens until Submit.
func (w *Workflow) StageImage(name, contentType string, data []byte) error {
	if w.state != StateEditing || w.draft == nil {
		return ErrNoDraft
	}
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("stage %q: %w", name, ErrUnsupportedImage)
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("stage %q (%d bytes): %w", name, len(data), ErrAssetTooLarge)
	}

	w.draft.Image = &StagedImage{
		Name:        name,
		ContentType: contentType,
		Data:        data,
		Preview:     "staged://" + uuid.NewString(),
	}
	return nil
}

// RemoveImage drops the staged image and releases its preview handle.
func (w *Workflow) RemoveImage() {
	if w.draft != nil {
		w.draft.Image = nil
	}
}

// objectKey generates a collision-resistant storage key for a staged file:
// upload timestamp, a random token, and the original file extension. Keys
// are never reused, even for repeated uploads of the same file.
func (w *Workflow) objectKey(name string) string {
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("%d-%s%s", w.now().UnixMilli(), uuid.NewString(), ext)
}

// Submit publishes the draft. The sequence is fixed: upload the staged
// image first (if any), then insert the record with the resulting public
// URL. An upload failure short-circuits the insert. On any failure the
// draft stays intact and the workflow returns to Editing; on success the
// draft is discarded and the workflow returns to Idle.
func (w *Workflow) Submit(ctx context.Context) (*posts.Post, error) {
	if w.state != StateEditing || w.draft == nil {
		return nil, ErrNoDraft
	}
	draft := w.draft

	req := posts.CreatePostRequest{
		Title:    draft.Title,
		Category: draft.Category,
		Content:  draft.Content,
		LinkURL:  draft.LinkURL,
	}
	// Required fields block submission outright: no gateway call is made.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w.state = StateSubmitting

	if draft.Image != nil {
		key := w.objectKey(draft.Image.Name)
		if err := w.gateway.UploadObject(ctx, key, draft.Image.ContentType, draft.Image.Data); err != nil {
			w.state = StateEditing
			return nil, fmt.Errorf("upload image: %w", err)
		}
		req.ImageKey = key
		req.ImageURL = w.gateway.PublicURL(key)
	}

	post, err := w.posts.Create(ctx, req)
	if err != nil {
		w.state = StateEditing
		return nil, err
	}

	w.draft = nil
	w.state = StateIdle
	return post, nil
}

// Delete removes a published post, cleaning up its stored image first.
// Asset cleanup is best-effort inside the repository; a record-delete
// failure is returned so the caller can surface it.
func (w *Workflow) Delete(ctx context.Context, id int64, imageKey string) error {
	return w.posts.Delete(ctx, id, imageKey)
}
