package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Greenfactor/internal/core/admin"
	"Greenfactor/internal/core/posts"
)

// maxPublishBytes caps the whole publish request body: the image cap plus
// headroom for the text fields and multipart framing.
const maxPublishBytes = admin.MaxImageSize + 1<<20

// formCategories are the choices offered by the publish form. The store
// column is open, but the UI constrains input to the recognized set.
var formCategories = []posts.Category{
	posts.CategoryActivity,
	posts.CategoryAnnouncement,
	posts.CategoryNews,
}

// LoginPageData holds data for the admin login page.
type LoginPageData struct {
	Error string
}

// LoginPageHandler renders the admin login page.
// GET /admin
func (h *Handlers) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	if isAdmin(r) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
		return
	}
	h.renderLogin(w, LoginPageData{})
}

// LoginSubmitHandler checks the submitted secret against the gate.
// The email field is collected by the form but never checked; only the
// password gates entry.
// POST /admin
func (h *Handlers) LoginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, LoginPageData{Error: "帳號或密碼錯誤"})
		return
	}

	if !h.gate.Admit(r.PostFormValue("password")) {
		slog.Warn("admin login rejected")
		h.renderLogin(w, LoginPageData{Error: "帳號或密碼錯誤"})
		return
	}

	if err := grantAdmin(w, r); err != nil {
		slog.Error("failed to save admin session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

// LogoutHandler clears the admin session and returns to the public site.
// POST /admin/logout
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := revokeAdmin(w, r); err != nil {
		slog.Warn("failed to clear admin session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// PublishFormData carries the operator's draft values back into the form
// when a submit fails, so nothing has to be re-entered.
type PublishFormData struct {
	Title    string
	Category posts.Category
	Content  string
	LinkURL  string
}

// DashboardPageData holds data for the admin dashboard page.
type DashboardPageData struct {
	Posts      []posts.Post
	Categories []posts.Category
	Form       PublishFormData
	// Error is shown verbatim to the operator: admin pages surface the raw
	// remote message since the operator needs the diagnostic detail.
	Error string
	// ShowForm reopens the publish dialog, used when a submit failed.
	ShowForm bool
}

// DashboardHandler renders the admin dashboard: the management table and
// the publish form.
// GET /admin/dashboard
func (h *Handlers) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	h.renderDashboard(w, r, DashboardPageData{
		Posts: h.posts.Refresh(r.Context()),
		Form:  PublishFormData{Category: posts.CategoryActivity},
	})
}

// PublishHandler drives the edit workflow for one submission: stage the
// uploaded image if any, then submit (upload, then insert). On failure the
// form re-renders with the draft intact and the error surfaced.
// POST /admin/posts
func (h *Handlers) PublishHandler(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPublishBytes)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		h.renderDashboard(w, r, DashboardPageData{
			Posts:    h.posts.Refresh(r.Context()),
			Form:     PublishFormData{Category: posts.CategoryActivity},
			Error:    "儲存失敗: " + err.Error(),
			ShowForm: true,
		})
		return
	}

	workflow := admin.NewWorkflow(h.gateway, h.posts)
	draft := workflow.Begin()
	draft.Title = r.PostFormValue("title")
	if category := r.PostFormValue("category"); category != "" {
		draft.Category = posts.Category(category)
	}
	draft.Content = r.PostFormValue("content")
	draft.LinkURL = r.PostFormValue("link_url")

	form := PublishFormData{
		Title:    draft.Title,
		Category: draft.Category,
		Content:  draft.Content,
		LinkURL:  draft.LinkURL,
	}

	if err := h.stageUpload(r, workflow); err != nil {
		h.renderDashboard(w, r, DashboardPageData{
			Posts:    h.posts.Refresh(r.Context()),
			Form:     form,
			Error:    "儲存失敗: " + err.Error(),
			ShowForm: true,
		})
		return
	}

	if _, err := workflow.Submit(r.Context()); err != nil {
		h.renderDashboard(w, r, DashboardPageData{
			Posts:    h.posts.Refresh(r.Context()),
			Form:     form,
			Error:    "儲存失敗: " + err.Error(),
			ShowForm: true,
		})
		return
	}

	// Success: the dashboard render after the redirect performs the fresh
	// list refresh.
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

// stageUpload reads the optional image field and stages it on the draft.
// A missing file is not an error.
func (h *Handlers) stageUpload(r *http.Request, workflow *admin.Workflow) error {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil
		}
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, admin.MaxImageSize+1))
	if err != nil {
		return err
	}
	return workflow.StageImage(header.Filename, header.Header.Get("Content-Type"), data)
}

// DeleteHandler removes a post and, best-effort, its stored image. The
// image key travels as a hidden form field so deletion doesn't depend on
// re-deriving it from the public URL.
// POST /admin/posts/{postID}/delete
func (h *Handlers) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
		return
	}

	workflow := admin.NewWorkflow(h.gateway, h.posts)
	if err := workflow.Delete(r.Context(), id, r.PostFormValue("image_key")); err != nil {
		h.renderDashboard(w, r, DashboardPageData{
			Posts: h.posts.Refresh(r.Context()),
			Form:  PublishFormData{Category: posts.CategoryActivity},
			Error: "刪除失敗: " + err.Error(),
		})
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

func (h *Handlers) renderLogin(w http.ResponseWriter, data LoginPageData) {
	if err := h.templates.Render(w, "admin_login.html", data); err != nil {
		slog.Error("failed to render admin login", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handlers) renderDashboard(w http.ResponseWriter, r *http.Request, data DashboardPageData) {
	data.Categories = formCategories
	if err := h.templates.Render(w, "admin_dashboard.html", data); err != nil {
		slog.Error("failed to render admin dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
