// SPDX-License-Identifier: MIT

package addon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/freelivtv/tamiltv/internal/cache"
	"github.com/freelivtv/tamiltv/internal/core/ident"
	"github.com/freelivtv/tamiltv/internal/hls"
	"github.com/freelivtv/tamiltv/internal/log"
	"github.com/freelivtv/tamiltv/internal/m3u"
)

// catalogPageSize is the fixed page size for catalog pagination.
const catalogPageSize = 100

// Config carries the addon identity served in the manifest.
type Config struct {
	ID          string
	Version     string
	Name        string
	Description string
	Logo        string
	IDPrefix    string // e.g. "tamil:"
	EnableLogos bool
}

// Service implements the catalog/meta/stream lookups. Errors from the
// registry, resolver and id codec are absorbed here and converted into
// the documented degraded responses; nothing propagates outward.
type Service struct {
	cfg      Config
	registry *m3u.Registry
	resolver *hls.Resolver
	metas    *cache.Cache[string, Meta]
}

// New creates the lookup service. metas caches rendered meta responses
// per channel id with the registry TTL.
func New(cfg Config, registry *m3u.Registry, resolver *hls.Resolver, metas *cache.Cache[string, Meta]) *Service {
	return &Service{cfg: cfg, registry: registry, resolver: resolver, metas: metas}
}

// catalogCategories maps per-category catalog ids to registry categories.
var catalogCategories = map[string]m3u.Category{
	"tamil-cricket":       m3u.CategoryCricket,
	"tamil-movies":        m3u.CategoryMovies,
	"tamil-news":          m3u.CategoryNews,
	"tamil-entertainment": m3u.CategoryEntertainment,
	"tamil-music":         m3u.CategoryMusic,
}

// categoryIcons decorate catalog descriptions, as the TV UI shows them.
var categoryIcons = map[m3u.Category]string{
	m3u.CategoryCricket:       "🏏",
	m3u.CategoryMovies:        "🎬",
	m3u.CategoryNews:          "📰",
	m3u.CategoryEntertainment: "📺",
	m3u.CategoryMusic:         "🎵",
	m3u.CategoryKids:          "👶",
	m3u.CategoryDevotional:    "🙏",
}

func categoryIcon(c m3u.Category) string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "📺"
}

// Manifest returns the addon manifest document.
func (s *Service) Manifest() Manifest {
	return Manifest{
		ID:          s.cfg.ID,
		Version:     s.cfg.Version,
		Name:        s.cfg.Name,
		Description: s.cfg.Description,
		Logo:        s.cfg.Logo,
		Types:       []string{"tv"},
		Catalogs: []Catalog{
			{Type: "tv", ID: "tamil-all", Name: "📺 All Channels",
				Extra: []Extra{{Name: "genre"}, {Name: "search"}, {Name: "skip"}}},
			{Type: "tv", ID: "tamil-cricket", Name: "🏏 Cricket"},
			{Type: "tv", ID: "tamil-movies", Name: "🎬 Movies"},
			{Type: "tv", ID: "tamil-news", Name: "📰 News"},
			{Type: "tv", ID: "tamil-entertainment", Name: "📺 Entertainment"},
			{Type: "tv", ID: "tamil-music", Name: "🎵 Music"},
		},
		Resources:  []string{"catalog", "meta", "stream"},
		IDPrefixes: []string{s.cfg.IDPrefix},
	}
}

// Catalog returns the metas for one catalog request. It never fails:
// registry errors already degraded to stale-or-empty, and an unknown
// catalog id serves the unfiltered list.
func (s *Service) Catalog(ctx context.Context, catalogID string, extra CatalogExtra) []Meta {
	channels := s.registry.Load(ctx)

	if category, ok := catalogCategories[catalogID]; ok {
		channels = filter(channels, func(ch m3u.Channel) bool { return ch.Category == category })
	}

	if extra.Search != "" {
		term := strings.ToLower(extra.Search)
		channels = filter(channels, func(ch m3u.Channel) bool {
			return strings.Contains(strings.ToLower(ch.Name), term) ||
				strings.Contains(strings.ToLower(ch.DisplayName), term) ||
				strings.Contains(strings.ToLower(string(ch.Category)), term)
		})
	}

	if extra.Genre != "" {
		channels = filter(channels, func(ch m3u.Channel) bool { return string(ch.Category) == extra.Genre })
	}

	if extra.Skip >= len(channels) {
		channels = nil
	} else {
		channels = channels[extra.Skip:]
	}
	if len(channels) > catalogPageSize {
		channels = channels[:catalogPageSize]
	}

	metas := make([]Meta, 0, len(channels))
	for _, ch := range channels {
		metas = append(metas, s.channelMeta(ch))
	}

	logger := log.WithComponentFromContext(ctx, "addon")
	logger.Debug().
		Str("catalog", catalogID).
		Int("metas", len(metas)).
		Msg("catalog served")

	return metas
}

// Meta returns the meta for one channel id. A decode failure means
// "unknown channel" (no meta); a decodable id whose channel has left
// the playlist gets a generic live-channel meta, because clients keep
// old ids in their saved lists.
func (s *Service) Meta(ctx context.Context, id string) (Meta, bool) {
	if !strings.HasPrefix(id, s.cfg.IDPrefix) {
		return Meta{}, false
	}

	if meta, ok := s.metas.Get(id); ok {
		return meta, true
	}

	url, err := ident.Decode(strings.TrimPrefix(id, s.cfg.IDPrefix))
	if err != nil {
		logger := log.WithComponentFromContext(ctx, "addon")
		logger.Debug().Str("id", id).Msg("undecodable channel id")
		return Meta{}, false
	}

	var meta Meta
	if ch, ok := s.registry.ByURL(ctx, url); ok {
		meta = s.channelMeta(ch)
		meta.Description = fmt.Sprintf("%s %s • %s\n\n%s",
			categoryIcon(ch.Category), ch.Category, ch.Quality, orDefault(ch.Group, "Tamil Live TV"))
	} else {
		meta = Meta{
			ID:          id,
			Type:        "tv",
			Name:        "Live Channel",
			PosterShape: "square",
			Description: "Live TV Channel",
			Genres:      []string{string(m3u.CategoryEntertainment)},
			ReleaseInfo: "LIVE",
			Runtime:     "LIVE",
		}
	}

	meta.Videos = []Video{{
		ID:        id,
		Title:     "🔴 Watch Live",
		Released:  time.Now().UTC().Format(time.RFC3339),
		Available: true,
	}}
	meta.BehaviorHints = &MetaHints{DefaultVideoID: id, HasScheduledVideos: false}

	s.metas.Set(id, meta)
	return meta, true
}

// Streams returns the streams for one channel id. Resolution failure
// degrades to the original playlist URL rather than an empty list; only
// an undecodable id yields no streams.
func (s *Service) Streams(ctx context.Context, id string) []Stream {
	if !strings.HasPrefix(id, s.cfg.IDPrefix) {
		return []Stream{}
	}

	playlistURL, err := ident.Decode(strings.TrimPrefix(id, s.cfg.IDPrefix))
	if err != nil {
		logger := log.WithComponentFromContext(ctx, "addon")
		logger.Debug().Str("id", id).Msg("undecodable channel id")
		return []Stream{}
	}

	resolved, err := s.resolver.Resolve(ctx, playlistURL)
	if err != nil {
		return []Stream{{
			URL:           playlistURL,
			Title:         "🔴 Live Stream (Fallback)",
			Name:          s.cfg.Name,
			BehaviorHints: StreamHints{NotWebReady: true},
		}}
	}

	return []Stream{{
		URL:           resolved,
		Title:         "🔴 Live Stream",
		Name:          s.cfg.Name,
		BehaviorHints: StreamHints{NotWebReady: true},
	}}
}

// channelMeta renders the catalog meta for one channel.
func (s *Service) channelMeta(ch m3u.Channel) Meta {
	id := s.cfg.IDPrefix + ident.Encode(ch.URL)

	meta := Meta{
		ID:          id,
		Type:        "tv",
		Name:        orDefault(ch.DisplayName, ch.Name),
		PosterShape: "square",
		Description: fmt.Sprintf("%s %s • %s", categoryIcon(ch.Category), ch.Category, ch.Quality),
		Genres:      []string{string(ch.Category)},
		ReleaseInfo: "LIVE",
		Runtime:     "LIVE",
		BehaviorHints: &MetaHints{
			DefaultVideoID:     id,
			HasScheduledVideos: false,
		},
	}
	if s.cfg.EnableLogos && ch.Logo != "" {
		meta.Poster = ch.Logo
		meta.Background = ch.Logo
	}
	return meta
}

func filter(channels []m3u.Channel, keep func(m3u.Channel) bool) []m3u.Channel {
	out := make([]m3u.Channel, 0, len(channels))
	for _, ch := range channels {
		if keep(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
