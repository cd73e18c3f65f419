// SPDX-License-Identifier: MIT

// Package api provides the HTTP surface of the addon: the Stremio
// protocol routes plus operational endpoints.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freelivtv/tamiltv/internal/addon"
	"github.com/freelivtv/tamiltv/internal/api/middleware"
	"github.com/freelivtv/tamiltv/internal/cache"
	"github.com/freelivtv/tamiltv/internal/config"
	"github.com/freelivtv/tamiltv/internal/health"
	"github.com/freelivtv/tamiltv/internal/keepalive"
	"github.com/freelivtv/tamiltv/internal/m3u"
)

// Caches bundles the three cache instances for the operational
// endpoints.
type Caches struct {
	Channels *cache.Cache[string, []m3u.Channel]
	Streams  *cache.Cache[string, string]
	Metas    *cache.Cache[string, addon.Meta]
}

// Stats returns the per-cache statistics keyed by cache name.
func (c Caches) Stats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"channels": c.Channels.Stats(),
		"streams":  c.Streams.Stats(),
		"metas":    c.Metas.Stats(),
	}
}

// Clear empties all three caches.
func (c Caches) Clear() {
	c.Channels.Clear()
	c.Streams.Clear()
	c.Metas.Clear()
}

// Server handles the addon's HTTP requests.
type Server struct {
	cfg     config.Config
	version string
	addon   *addon.Service
	caches  Caches
	healthM *health.Manager
	pinger  *keepalive.Pinger
}

// New creates the HTTP server façade.
func New(cfg config.Config, version string, svc *addon.Service, caches Caches, healthM *health.Manager, pinger *keepalive.Pinger) *Server {
	return &Server{
		cfg:     cfg,
		version: version,
		addon:   svc,
		caches:  caches,
		healthM: healthM,
		pinger:  pinger,
	}
}

// Routes builds the router with the canonical middleware stack.
func (s *Server) Routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		AllowedOrigins:   s.cfg.CORSOrigins,
		RateLimitEnabled: s.cfg.RateLimitEnabled,
		RateLimitPerMin:  s.cfg.RateLimitPerMin,
	})

	r.Get("/", s.handleStatusPage)
	r.Get("/manifest.json", s.handleManifest)
	r.Get("/catalog/tv/{catalog}.json", s.handleCatalog)
	r.Get("/catalog/tv/{catalog}/{extra}.json", s.handleCatalog)
	r.Get("/meta/tv/{id}.json", s.handleMeta)
	r.Get("/stream/tv/{id}.json", s.handleStream)

	r.Get("/health", s.handleHealth)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/api/cache/stats", s.handleCacheStats)
	r.Post("/api/cache/clear", s.handleCacheClear)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	return r
}
