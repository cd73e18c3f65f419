// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TAMILTV_LISTEN", ":8080")
	t.Setenv("TAMILTV_MAX_CHANNELS", "100")
	t.Setenv("TAMILTV_CHANNEL_TTL", "30m")
	t.Setenv("TAMILTV_RATE_LIMIT_ENABLED", "false")
	t.Setenv("TAMILTV_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 100, cfg.MaxChannels)
	assert.Equal(t, 30*time.Minute, cfg.ChannelTTL)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("TAMILTV_MAX_CHANNELS", "not-a-number")
	t.Setenv("TAMILTV_STREAM_TTL", "not-a-duration")

	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.MaxChannels, cfg.MaxChannels)
	assert.Equal(t, def.StreamTTL, cfg.StreamTTL)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9000"
addon:
  name: "Custom Addon"
playlist:
  url: "http://example.com/list.m3u"
  max_channels: 250
cache:
  channel_ttl: 45m
  max_entries: 123
keepalive:
  enabled: true
  url: "https://addon.example/"
  interval: 5m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "Custom Addon", cfg.AddonName)
	assert.Equal(t, "http://example.com/list.m3u", cfg.PlaylistURL)
	assert.Equal(t, 250, cfg.MaxChannels)
	assert.Equal(t, 45*time.Minute, cfg.ChannelTTL)
	assert.Equal(t, 123, cfg.MaxCacheEntries)
	assert.True(t, cfg.KeepAliveEnabled)
	assert.Equal(t, 5*time.Minute, cfg.KeepAliveInterval)

	// Unnamed fields keep their defaults.
	assert.Equal(t, Default().StreamTTL, cfg.StreamTTL)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9000\"\n"), 0o644))
	t.Setenv("TAMILTV_LISTEN", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cache:\n  channel_ttl: [nope]\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen", func(c *Config) { c.ListenAddr = "" }},
		{"empty playlist url", func(c *Config) { c.PlaylistURL = "" }},
		{"non-http playlist url", func(c *Config) { c.PlaylistURL = "ftp://example.com/list.m3u" }},
		{"zero max channels", func(c *Config) { c.MaxChannels = 0 }},
		{"zero cache entries", func(c *Config) { c.MaxCacheEntries = 0 }},
		{"zero channel ttl", func(c *Config) { c.ChannelTTL = 0 }},
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"keepalive without interval", func(c *Config) {
			c.KeepAliveEnabled = true
			c.KeepAliveInterval = 0
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
