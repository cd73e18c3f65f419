// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// duration parses YAML values like "30s" or "10m".
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

// fileConfig mirrors Config with optional fields so a config file only
// overrides what it names.
type fileConfig struct {
	Listen   *string `yaml:"listen"`
	LogLevel *string `yaml:"log_level"`

	Addon struct {
		ID          *string `yaml:"id"`
		Name        *string `yaml:"name"`
		Description *string `yaml:"description"`
		Logo        *string `yaml:"logo"`
		EnableLogos *bool   `yaml:"enable_logos"`
	} `yaml:"addon"`

	Playlist struct {
		URL         *string `yaml:"url"`
		UserAgent   *string `yaml:"user_agent"`
		MaxChannels *int    `yaml:"max_channels"`
	} `yaml:"playlist"`

	Stream struct {
		UserAgent *string `yaml:"user_agent"`
		Referer   *string `yaml:"referer"`
	} `yaml:"stream"`

	Cache struct {
		ChannelTTL    *duration `yaml:"channel_ttl"`
		StreamTTL     *duration `yaml:"stream_ttl"`
		MaxEntries    *int      `yaml:"max_entries"`
		SweepInterval *duration `yaml:"sweep_interval"`
	} `yaml:"cache"`

	RequestTimeout *duration `yaml:"request_timeout"`

	HTTP struct {
		CORSOrigins      []string `yaml:"cors_origins"`
		RateLimitEnabled *bool    `yaml:"rate_limit_enabled"`
		RateLimitPerMin  *int     `yaml:"rate_limit_per_min"`
	} `yaml:"http"`

	KeepAlive struct {
		Enabled  *bool     `yaml:"enabled"`
		URL      *string   `yaml:"url"`
		Interval *duration `yaml:"interval"`
	} `yaml:"keepalive"`
}

// applyFile overlays the YAML file at path onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.ListenAddr, fc.Listen)
	setIf(&cfg.LogLevel, fc.LogLevel)

	setIf(&cfg.AddonID, fc.Addon.ID)
	setIf(&cfg.AddonName, fc.Addon.Name)
	setIf(&cfg.AddonDescription, fc.Addon.Description)
	setIf(&cfg.AddonLogo, fc.Addon.Logo)
	setIf(&cfg.EnableLogos, fc.Addon.EnableLogos)

	setIf(&cfg.PlaylistURL, fc.Playlist.URL)
	setIf(&cfg.PlaylistUserAgent, fc.Playlist.UserAgent)
	setIf(&cfg.MaxChannels, fc.Playlist.MaxChannels)

	setIf(&cfg.StreamUserAgent, fc.Stream.UserAgent)
	setIf(&cfg.StreamReferer, fc.Stream.Referer)

	setDur(&cfg.ChannelTTL, fc.Cache.ChannelTTL)
	setDur(&cfg.StreamTTL, fc.Cache.StreamTTL)
	setIf(&cfg.MaxCacheEntries, fc.Cache.MaxEntries)
	setDur(&cfg.SweepInterval, fc.Cache.SweepInterval)

	setDur(&cfg.RequestTimeout, fc.RequestTimeout)

	if len(fc.HTTP.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.HTTP.CORSOrigins
	}
	setIf(&cfg.RateLimitEnabled, fc.HTTP.RateLimitEnabled)
	setIf(&cfg.RateLimitPerMin, fc.HTTP.RateLimitPerMin)

	setIf(&cfg.KeepAliveEnabled, fc.KeepAlive.Enabled)
	setIf(&cfg.KeepAliveURL, fc.KeepAlive.URL)
	setDur(&cfg.KeepAliveInterval, fc.KeepAlive.Interval)

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDur(dst *time.Duration, src *duration) {
	if src != nil {
		*dst = time.Duration(*src)
	}
}

// Load builds the effective configuration with the precedence
// ENV > file > defaults. path may be empty (no file).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
