package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"wordletracker/internal/security"
	"wordletracker/internal/service"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

// RequireAdmin rejects requests without a valid admin session cookie
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(security.SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "authentication required", "", nil)
			return
		}

		if err := m.authService.ValidateSession(cookie.Value); err != nil {
			if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionExpired) {
				http.SetCookie(w, security.CreateDeleteCookie(r))
				respondWithError(w, http.StatusUnauthorized, "session invalid or expired", "", nil)
				return
			}
			respondWithError(w, http.StatusInternalServerError, "internal server error", "Session validation failed", err)
			return
		}

		next(w, r)
	}
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.rateLimiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging logs each request's method, path, and duration
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
