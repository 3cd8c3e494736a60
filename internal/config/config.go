// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// SupabaseURL is the hosted project endpoint.
	SupabaseURL string
	// SupabaseAnonKey is the public (non-secret) API key.
	SupabaseAnonKey string
	// StorageBucket holds uploaded post images.
	StorageBucket string
	// AdminSecret is the shared secret checked by the admin gate.
	AdminSecret string
	// SessionSecret signs the admin session cookie.
	SessionSecret string
	// Port the HTTP server listens on.
	Port string
	// GatewayTimeout bounds each gateway request.
	GatewayTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; missing .env is not an
// error so deployed environments can rely on real env vars.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		StorageBucket:   getEnv("STORAGE_BUCKET", "post-images"),
		AdminSecret:     os.Getenv("ADMIN_SECRET"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		Port:            getEnv("PORT", "8080"),
		GatewayTimeout:  15 * time.Second,
	}

	if raw := os.Getenv("GATEWAY_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT %q: %w", raw, err)
		}
		cfg.GatewayTimeout = d
	}

	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("ADMIN_SECRET is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
