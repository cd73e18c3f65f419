// SPDX-License-Identifier: MIT

package hls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/freelivtv/tamiltv/internal/cache"
	"github.com/freelivtv/tamiltv/internal/core/urlutil"
	"github.com/freelivtv/tamiltv/internal/log"
	"github.com/freelivtv/tamiltv/internal/metrics"
)

// ErrUpstream reports a manifest fetch that failed at the transport or
// HTTP level.
var ErrUpstream = errors.New("hls: upstream fetch failed")

// maxManifestBytes bounds the manifest body read; manifests are small.
const maxManifestBytes = 4 << 20

// ResolverConfig carries the upstream request identity. Some upstreams
// reject requests without a TV-like user agent and the expected referer.
type ResolverConfig struct {
	UserAgent string
	Referer   string
}

// Resolver turns playlist URLs into concrete media URLs, caching
// results per playlist URL.
type Resolver struct {
	cfg    ResolverConfig
	client *http.Client
	urls   *cache.Cache[string, string]
}

// NewResolver creates a Resolver using the given upstream HTTP client
// and resolved-URL cache.
func NewResolver(cfg ResolverConfig, client *http.Client, urls *cache.Cache[string, string]) *Resolver {
	return &Resolver{cfg: cfg, client: client, urls: urls}
}

// Resolve fetches playlistURL, classifies the manifest and derives one
// concrete media URL, caching the result. On any failure it returns an
// error and caches nothing; the caller substitutes the original
// playlist URL, which is itself often directly playable.
func (r *Resolver) Resolve(ctx context.Context, playlistURL string) (string, error) {
	logger := log.WithComponentFromContext(ctx, "resolver")

	if resolved, ok := r.urls.Get(playlistURL); ok {
		metrics.IncCacheLookup("streams", true)
		logger.Debug().Str("url", urlutil.SanitizeURL(resolved)).Msg("serving cached stream url")
		return resolved, nil
	}
	metrics.IncCacheLookup("streams", false)

	start := time.Now()
	content, err := r.fetch(ctx, playlistURL)
	if err != nil {
		metrics.IncStreamResolve(false, KindNone)
		logger.Warn().
			Err(err).
			Str("event", "resolve.fetch_failed").
			Str("url", urlutil.SanitizeURL(playlistURL)).
			Msg("manifest fetch failed")
		return "", err
	}

	resolved, kind, err := Extract(content, playlistURL)
	metrics.ObserveStreamResolve(time.Since(start))
	if err != nil {
		metrics.IncStreamResolve(false, kind)
		logger.Warn().
			Str("event", "resolve.no_stream").
			Str("url", urlutil.SanitizeURL(playlistURL)).
			Msg("no media url found in manifest")
		return "", err
	}

	r.urls.Set(playlistURL, resolved)
	metrics.IncStreamResolve(true, kind)
	logger.Info().
		Str("event", "resolve.ok").
		Str("kind", kind).
		Str("url", urlutil.SanitizeURL(resolved)).
		Dur("duration", time.Since(start)).
		Msg("stream url resolved")

	return resolved, nil
}

func (r *Resolver) fetch(ctx context.Context, playlistURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, playlistURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "*/*")
	if r.cfg.Referer != "" {
		req.Header.Set("Referer", r.cfg.Referer)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUpstream, res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxManifestBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return string(data), nil
}
