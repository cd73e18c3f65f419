// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/freelivtv/tamiltv/internal/addon"
	"github.com/freelivtv/tamiltv/internal/api"
	"github.com/freelivtv/tamiltv/internal/cache"
	"github.com/freelivtv/tamiltv/internal/config"
	"github.com/freelivtv/tamiltv/internal/core/urlutil"
	"github.com/freelivtv/tamiltv/internal/health"
	"github.com/freelivtv/tamiltv/internal/hls"
	"github.com/freelivtv/tamiltv/internal/keepalive"
	tvlog "github.com/freelivtv/tamiltv/internal/log"
	"github.com/freelivtv/tamiltv/internal/m3u"
	"github.com/freelivtv/tamiltv/internal/platform/httpx"
)

var (
	version   = "v2.1.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	tvlog.Configure(tvlog.Config{
		Level:   cfg.LogLevel,
		Service: "tamiltv",
		Version: version,
	})
	logger := tvlog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Three independent caches: one-entry channel snapshot, resolved
	// stream URLs, rendered metas. Each owns a background sweep.
	channelCache := cache.New(1, cfg.ChannelTTL,
		cache.WithJanitor[string, []m3u.Channel](cfg.SweepInterval))
	streamCache := cache.New(cfg.MaxCacheEntries, cfg.StreamTTL,
		cache.WithJanitor[string, string](cfg.SweepInterval))
	metaCache := cache.New(cfg.MaxCacheEntries, cfg.ChannelTTL,
		cache.WithJanitor[string, addon.Meta](cfg.SweepInterval))
	defer channelCache.Close()
	defer streamCache.Close()
	defer metaCache.Close()

	upstreamClient := httpx.NewClient(cfg.RequestTimeout)

	registry := m3u.NewRegistry(m3u.RegistryConfig{
		PlaylistURL: cfg.PlaylistURL,
		UserAgent:   cfg.PlaylistUserAgent,
		MaxChannels: cfg.MaxChannels,
	}, upstreamClient, channelCache)

	resolver := hls.NewResolver(hls.ResolverConfig{
		UserAgent: cfg.StreamUserAgent,
		Referer:   cfg.StreamReferer,
	}, upstreamClient, streamCache)

	service := addon.New(addon.Config{
		ID:          cfg.AddonID,
		Version:     version,
		Name:        cfg.AddonName,
		Description: cfg.AddonDescription,
		Logo:        cfg.AddonLogo,
		IDPrefix:    cfg.IDPrefix,
		EnableLogos: cfg.EnableLogos,
	}, registry, resolver, metaCache)

	healthManager := health.NewManager(version)
	healthManager.Register(health.CheckerFunc{
		CheckerName: "registry",
		Fn: func(context.Context) health.CheckResult {
			if channelCache.Len() == 0 {
				return health.CheckResult{
					Status:  health.StatusDegraded,
					Message: "no playlist snapshot loaded yet",
				}
			}
			return health.CheckResult{Status: health.StatusHealthy}
		},
	})

	keepAliveURL := ""
	if cfg.KeepAliveEnabled {
		keepAliveURL = cfg.KeepAliveURL
	}
	pinger := keepalive.New(keepAliveURL, cfg.KeepAliveInterval, httpx.NewClient(cfg.RequestTimeout))

	server := api.New(cfg, version, service, api.Caches{
		Channels: channelCache,
		Streams:  streamCache,
		Metas:    metaCache,
	}, healthManager, pinger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().
		Str("event", "daemon.starting").
		Str("listen", cfg.ListenAddr).
		Str("playlist", urlutil.SanitizeURL(cfg.PlaylistURL)).
		Int("max_channels", cfg.MaxChannels).
		Msg("starting addon server")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return pinger.Run(gctx)
	})

	// Warm the registry so the first catalog request is served from
	// cache. Failure is fine; the request path degrades on its own.
	g.Go(func() error {
		warmCtx, cancel := context.WithTimeout(gctx, cfg.RequestTimeout+5*time.Second)
		defer cancel()
		channels := registry.Load(warmCtx)
		logger.Info().Int("channels", len(channels)).Msg("registry warmed")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("daemon exited with error")
		os.Exit(1)
	}
	logger.Info().Str("event", "daemon.stopped").Msg("shutdown complete")
}
