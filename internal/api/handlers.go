// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/freelivtv/tamiltv/internal/addon"
	"github.com/freelivtv/tamiltv/internal/log"
)

func (s *Server) handleManifest(w http.ResponseWriter, _ *http.Request) {
	manifest := s.addon.Manifest()
	manifest.Version = s.version
	respondJSON(w, http.StatusOK, manifest)
}

// parseExtra decodes a catalog extra path segment like
// "search=vijay&skip=100". Malformed segments degrade to no extras.
func parseExtra(segment string) addon.CatalogExtra {
	var extra addon.CatalogExtra
	values, err := url.ParseQuery(segment)
	if err != nil {
		return extra
	}
	extra.Search = values.Get("search")
	extra.Genre = values.Get("genre")
	if skip, err := strconv.Atoi(values.Get("skip")); err == nil && skip > 0 {
		extra.Skip = skip
	}
	return extra
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "catalog")
	extra := parseExtra(chi.URLParam(r, "extra"))

	metas := s.addon.Catalog(r.Context(), catalogID, extra)
	respondJSON(w, http.StatusOK, map[string]any{"metas": metas})
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	meta, ok := s.addon.Meta(r.Context(), id)
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"meta": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"meta": meta})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	streams := s.addon.Streams(r.Context(), id)
	respondJSON(w, http.StatusOK, map[string]any{"streams": streams})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.healthM.ServeHealth(w, r)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.healthM.ServeReady(w, r)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"caches":    s.caches.Stats(),
		"keepalive": s.pinger.Stats(),
	})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.caches.Clear()
	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str("event", "cache.cleared").
		Msg("all caches cleared")
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Name}}</title>
  <style>
    body { font-family: Arial; max-width: 600px; margin: 50px auto; padding: 20px; background: #1a1a2e; color: white; }
    .status { color: #4ade80; font-size: 20px; }
    code { background: rgba(255,255,255,0.1); padding: 10px; display: block; margin: 10px 0; border-radius: 5px; word-break: break-all; }
  </style>
</head>
<body>
  <h1>📺 {{.Name}}</h1>
  <p class="status">✅ Server Running ({{.Version}})</p>
  <h3>Install URL:</h3>
  <code>{{.InstallURL}}</code>
  <p>200+ Tamil Channels • Cricket • Movies • News</p>
</body>
</html>
`))

func (s *Server) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := statusPage.Execute(w, map[string]string{
		"Name":       s.cfg.AddonName,
		"Version":    s.version,
		"InstallURL": fmt.Sprintf("%s://%s/manifest.json", scheme, r.Host),
	})
	if err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).Msg("failed to render status page")
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := log.WithComponent("api")
		logger.Error().Err(err).Msg("failed to write JSON response")
	}
}
