// Package middleware provides HTTP middleware shared across routes.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple in-memory per-client rate limiter.
// Besides keeping the read pages cheap to serve, it makes brute-forcing
// the admin gate's shared secret expensive. In-memory only: it provides
// no protection across multiple server instances.
type RateLimiter struct {
	clients  map[string]*clientLimit
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type clientLimit struct {
	resetTime time.Time
	count     int
}

// NewRateLimiter creates a new rate limiter allowing the given number of
// requests per window.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimit),
		requests: requests,
		window:   window,
	}

	// Cleanup old entries every window duration
	go rl.cleanup()

	return rl
}

// Middleware returns a rate limiting middleware keyed by client IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow checks if a client is allowed to make a request.
func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()

	client, exists := rl.clients[clientID]
	if !exists {
		rl.clients[clientID] = &clientLimit{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if now.After(client.resetTime) {
		client.count = 1
		client.resetTime = now.Add(rl.window)
		return true
	}

	if client.count < rl.requests {
		client.count++
		return true
	}

	return false
}

// cleanup removes expired client entries periodically.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for clientID, client := range rl.clients {
			if now.After(client.resetTime) {
				delete(rl.clients, clientID)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP extracts the client IP, preferring proxy headers when present.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
