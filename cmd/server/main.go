package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"Greenfactor/internal/config"
	"Greenfactor/internal/core/admin"
	"Greenfactor/internal/core/posts"
	"Greenfactor/internal/middleware"
	"Greenfactor/internal/supabase"
	"Greenfactor/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	gateway, err := supabase.New(supabase.Config{
		BaseURL: cfg.SupabaseURL,
		AnonKey: cfg.SupabaseAnonKey,
		Bucket:  cfg.StorageBucket,
		Timeout: cfg.GatewayTimeout,
	})
	if err != nil {
		log.Fatal("Failed to create gateway client: ", err)
	}

	if err := web.InitSessionStore(cfg.SessionSecret); err != nil {
		log.Fatal("Failed to initialize session store: ", err)
	}

	templates, err := web.NewTemplates()
	if err != nil {
		log.Fatal("Failed to parse templates: ", err)
	}

	repo := posts.NewService(gateway)
	gate := admin.NewGate(cfg.AdminSecret)
	handlers := web.NewHandlers(templates, repo, gateway, gate)

	r := chi.NewRouter()
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Rate limiting: 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Mount("/", handlers.Routes())

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	fmt.Printf("Greenfactor starting on port %s\n", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
