// SPDX-License-Identifier: MIT

package m3u

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/freelivtv/tamiltv/internal/cache"
	"github.com/freelivtv/tamiltv/internal/core/urlutil"
	"github.com/freelivtv/tamiltv/internal/log"
	"github.com/freelivtv/tamiltv/internal/metrics"
)

// snapshotKey is the single key under which the whole channel list is
// cached; the snapshot cache has capacity 1.
const snapshotKey = "channels"

// maxPlaylistBytes bounds the upstream playlist body read.
const maxPlaylistBytes = 16 << 20

// RegistryConfig carries the upstream playlist settings.
type RegistryConfig struct {
	PlaylistURL string
	UserAgent   string
	MaxChannels int
}

// Registry loads and caches the channel list from the upstream playlist.
type Registry struct {
	cfg    RegistryConfig
	client *http.Client
	snap   *cache.Cache[string, []Channel]
}

// NewRegistry creates a Registry using the given upstream HTTP client
// and snapshot cache (capacity 1, registry TTL).
func NewRegistry(cfg RegistryConfig, client *http.Client, snap *cache.Cache[string, []Channel]) *Registry {
	return &Registry{cfg: cfg, client: client, snap: snap}
}

// Load returns the current channel list. A fresh snapshot is served from
// cache; on a miss the upstream playlist is fetched, parsed and stored.
// Fetch failures degrade to the last snapshot even if expired, then to
// an empty list. Load never returns an error.
func (r *Registry) Load(ctx context.Context) []Channel {
	logger := log.WithComponentFromContext(ctx, "registry")

	// Get drops an expired snapshot as a side effect, so capture the
	// stale fallback first; it is served if the refetch fails.
	stale, hasStale := r.snap.Peek(snapshotKey)

	if channels, ok := r.snap.Get(snapshotKey); ok {
		metrics.IncCacheLookup("channels", true)
		logger.Debug().Int("channels", len(channels)).Msg("serving cached snapshot")
		return channels
	}
	metrics.IncCacheLookup("channels", false)

	start := time.Now()
	body, err := r.fetch(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "playlist.fetch_failed").
			Str("url", urlutil.SanitizeURL(r.cfg.PlaylistURL)).
			Msg("playlist fetch failed")

		if hasStale {
			metrics.IncPlaylistRefresh("stale")
			logger.Warn().Int("channels", len(stale)).Msg("serving stale snapshot after fetch error")
			return stale
		}
		metrics.IncPlaylistRefresh("empty")
		return []Channel{}
	}

	channels := Parse(body, r.cfg.MaxChannels)
	r.snap.Set(snapshotKey, channels)

	metrics.IncPlaylistRefresh("fresh")
	metrics.ObservePlaylistRefresh(time.Since(start))
	metrics.SetChannelCount(len(channels))
	logger.Info().
		Str("event", "playlist.refreshed").
		Int("channels", len(channels)).
		Dur("duration", time.Since(start)).
		Msg("playlist refreshed")

	return channels
}

// ByURL returns the channel whose source URL matches exactly.
func (r *Registry) ByURL(ctx context.Context, url string) (Channel, bool) {
	for _, ch := range r.Load(ctx) {
		if ch.URL == url {
			return ch, true
		}
	}
	return Channel{}, false
}

// ByCategory returns the channels matching the given category, in
// snapshot order.
func (r *Registry) ByCategory(ctx context.Context, category Category) []Channel {
	all := r.Load(ctx)
	out := make([]Channel, 0, len(all))
	for _, ch := range all {
		if ch.Category == category {
			out = append(out, ch)
		}
	}
	return out
}

// Categories returns the distinct categories of the current snapshot
// with their channel counts, in first-seen order.
func (r *Registry) Categories(ctx context.Context) []CategoryCount {
	var out []CategoryCount
	index := make(map[Category]int)
	for _, ch := range r.Load(ctx) {
		if i, ok := index[ch.Category]; ok {
			out[i].Count++
			continue
		}
		index[ch.Category] = len(out)
		out = append(out, CategoryCount{Name: ch.Category, Count: 1})
	}
	return out
}

// CategoryCount pairs a category with its channel count.
type CategoryCount struct {
	Name  Category `json:"name"`
	Count int      `json:"count"`
}

func (r *Registry) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.PlaylistURL, nil)
	if err != nil {
		return "", fmt.Errorf("build playlist request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "*/*")

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch playlist: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("fetch playlist: unexpected status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxPlaylistBytes))
	if err != nil {
		return "", fmt.Errorf("read playlist body: %w", err)
	}
	return string(data), nil
}
