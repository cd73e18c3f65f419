// SPDX-License-Identifier: MIT

// Package config loads the service configuration with the precedence
// ENV > config file > defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds every runtime setting of the gateway.
type Config struct {
	ListenAddr string
	LogLevel   string

	// Addon identity, served in the manifest.
	AddonID          string
	AddonName        string
	AddonDescription string
	AddonLogo        string
	IDPrefix         string
	EnableLogos      bool

	// Upstream playlist.
	PlaylistURL       string
	PlaylistUserAgent string
	MaxChannels       int

	// Stream resolution. Some upstreams reject requests without a
	// TV-like user agent and the expected referer.
	StreamUserAgent string
	StreamReferer   string

	// Caching.
	ChannelTTL      time.Duration
	StreamTTL       time.Duration
	MaxCacheEntries int
	SweepInterval   time.Duration

	// Upstream fetch timeout.
	RequestTimeout time.Duration

	// HTTP ingress.
	CORSOrigins      []string
	RateLimitEnabled bool
	RateLimitPerMin  int

	// Keep-alive self ping.
	KeepAliveEnabled  bool
	KeepAliveURL      string
	KeepAliveInterval time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr: ":3000",
		LogLevel:   "info",

		AddonID:          "org.freelivtv.tamil",
		AddonName:        "FREE LIV TV (Tamil)",
		AddonDescription: "Tamil Live TV - 200+ Channels | Cricket | Movies | News | Optimized for Samsung TV",
		AddonLogo:        "https://i.ibb.co/p4knk5y/images-4.png",
		IDPrefix:         "tamil:",
		EnableLogos:      true,

		PlaylistURL:       "https://raw.githubusercontent.com/Jash-k/m3u/refs/heads/main/starshare.m3u",
		PlaylistUserAgent: "Mozilla/5.0 (compatible; StremioAddon/2.0)",
		MaxChannels:       500,

		StreamUserAgent: "Mozilla/5.0 (SMART-TV; Linux; Tizen 5.0) AppleWebKit/537.36",
		StreamReferer:   "https://freelivtvstrshare.vvishwas042.workers.dev/",

		ChannelTTL:      time.Hour,
		StreamTTL:       4 * time.Hour,
		MaxCacheEntries: 500,
		SweepInterval:   10 * time.Minute,

		RequestTimeout: 10 * time.Second,

		CORSOrigins:      []string{"*"},
		RateLimitEnabled: true,
		RateLimitPerMin:  600,

		KeepAliveEnabled:  false,
		KeepAliveInterval: 10 * time.Minute,
	}
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.ListenAddr = ParseString("TAMILTV_LISTEN", cfg.ListenAddr)
	cfg.LogLevel = ParseString("TAMILTV_LOG_LEVEL", cfg.LogLevel)

	cfg.AddonID = ParseString("TAMILTV_ADDON_ID", cfg.AddonID)
	cfg.AddonName = ParseString("TAMILTV_ADDON_NAME", cfg.AddonName)
	cfg.AddonDescription = ParseString("TAMILTV_ADDON_DESCRIPTION", cfg.AddonDescription)
	cfg.AddonLogo = ParseString("TAMILTV_ADDON_LOGO", cfg.AddonLogo)
	cfg.EnableLogos = ParseBool("TAMILTV_ENABLE_LOGOS", cfg.EnableLogos)

	cfg.PlaylistURL = ParseString("TAMILTV_PLAYLIST_URL", cfg.PlaylistURL)
	cfg.PlaylistUserAgent = ParseString("TAMILTV_PLAYLIST_USER_AGENT", cfg.PlaylistUserAgent)
	cfg.MaxChannels = ParseInt("TAMILTV_MAX_CHANNELS", cfg.MaxChannels)

	cfg.StreamUserAgent = ParseString("TAMILTV_STREAM_USER_AGENT", cfg.StreamUserAgent)
	cfg.StreamReferer = ParseString("TAMILTV_STREAM_REFERER", cfg.StreamReferer)

	cfg.ChannelTTL = ParseDuration("TAMILTV_CHANNEL_TTL", cfg.ChannelTTL)
	cfg.StreamTTL = ParseDuration("TAMILTV_STREAM_TTL", cfg.StreamTTL)
	cfg.MaxCacheEntries = ParseInt("TAMILTV_MAX_CACHE_ENTRIES", cfg.MaxCacheEntries)
	cfg.SweepInterval = ParseDuration("TAMILTV_SWEEP_INTERVAL", cfg.SweepInterval)

	cfg.RequestTimeout = ParseDuration("TAMILTV_REQUEST_TIMEOUT", cfg.RequestTimeout)

	if origins := ParseString("TAMILTV_CORS_ORIGINS", ""); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.CORSOrigins = cfg.CORSOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, p)
			}
		}
	}
	cfg.RateLimitEnabled = ParseBool("TAMILTV_RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.RateLimitPerMin = ParseInt("TAMILTV_RATE_LIMIT_PER_MIN", cfg.RateLimitPerMin)

	cfg.KeepAliveEnabled = ParseBool("TAMILTV_KEEPALIVE_ENABLED", cfg.KeepAliveEnabled)
	cfg.KeepAliveURL = ParseString("TAMILTV_KEEPALIVE_URL", cfg.KeepAliveURL)
	cfg.KeepAliveInterval = ParseDuration("TAMILTV_KEEPALIVE_INTERVAL", cfg.KeepAliveInterval)
}

// Validate rejects configurations the service cannot start with. This
// is the only startup-fatal error path; everything request-scoped
// degrades instead.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen address must not be empty")
	}
	if c.PlaylistURL == "" {
		return fmt.Errorf("config: playlist URL must not be empty")
	}
	if u, err := url.Parse(c.PlaylistURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: playlist URL %q is not a valid http(s) URL", c.PlaylistURL)
	}
	if c.MaxChannels <= 0 {
		return fmt.Errorf("config: max channels must be positive, got %d", c.MaxChannels)
	}
	if c.MaxCacheEntries <= 0 {
		return fmt.Errorf("config: max cache entries must be positive, got %d", c.MaxCacheEntries)
	}
	if c.ChannelTTL <= 0 || c.StreamTTL <= 0 {
		return fmt.Errorf("config: cache TTLs must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive")
	}
	if c.KeepAliveEnabled && c.KeepAliveInterval <= 0 {
		return fmt.Errorf("config: keep-alive interval must be positive")
	}
	return nil
}
