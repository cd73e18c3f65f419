// SPDX-License-Identifier: MIT

// Package middleware provides the canonical HTTP ingress middleware
// stack for the addon server.
package middleware

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// StackConfig configures the ingress middleware stack.
type StackConfig struct {
	AllowedOrigins []string

	RateLimitEnabled bool
	RateLimitPerMin  int
}

// NewRouter constructs a chi router with the canonical middleware stack
// applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the canonical middleware stack to r. Order
// matters: the recoverer wraps everything, correlation comes before
// anything that logs, and rate limiting runs last so rejected requests
// are still observable.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5, "application/json", "text/html"))
	r.Use(Metrics)
	r.Use(Logging)
	if cfg.RateLimitEnabled {
		r.Use(RateLimit(cfg.RateLimitPerMin))
	}
}
