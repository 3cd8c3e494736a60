package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Greenfactor/internal/core/admin"
	"Greenfactor/internal/core/posts"
	"Greenfactor/internal/supabase"
)

// Handlers provides the HTTP handlers for the public site and admin panel.
type Handlers struct {
	templates *Templates
	posts     posts.Service
	gateway   supabase.Client
	gate      *admin.Gate
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(templates *Templates, repo posts.Service, gateway supabase.Client, gate *admin.Gate) *Handlers {
	return &Handlers{
		templates: templates,
		posts:     repo,
		gateway:   gateway,
		gate:      gate,
	}
}

// Routes mounts all site routes on a fresh router.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HomeHandler)
	r.Get("/news/{postID}", h.DetailHandler)

	r.Get("/admin", h.LoginPageHandler)
	r.Post("/admin", h.LoginSubmitHandler)
	r.Get("/admin/dashboard", h.DashboardHandler)
	r.Post("/admin/posts", h.PublishHandler)
	r.Post("/admin/posts/{postID}/delete", h.DeleteHandler)
	r.Post("/admin/logout", h.LogoutHandler)

	return r
}

// HomePageData holds data for the public listing page.
type HomePageData struct {
	Posts []posts.Post
}

// HomeHandler handles GET / and renders the news listing. A failed refresh
// has already degraded to an empty list inside the repository, so the page
// shows the empty state rather than an error.
func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path - let other routes handle their own paths
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := HomePageData{
		Posts: h.posts.Refresh(r.Context()),
	}

	if err := h.templates.Render(w, "home.html", data); err != nil {
		slog.Error("failed to render home page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// DetailPageData holds data for the news detail page.
type DetailPageData struct {
	Post posts.Post
}

// DetailHandler handles GET /news/{postID}. An unknown or malformed id
// redirects back to the listing: an invalid or deleted detail link must
// never render a broken page.
func (h *Handlers) DetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	post, err := h.posts.Find(r.Context(), id)
	if err != nil {
		if !posts.IsNotFound(err) {
			slog.Error("failed to load post detail", "post_id", id, "error", err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := DetailPageData{Post: *post}
	if err := h.templates.Render(w, "detail.html", data); err != nil {
		slog.Error("failed to render detail page", "post_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
