// SPDX-License-Identifier: MIT

// Package metrics exposes prometheus instruments for the addon.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by route, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tamiltv_http_requests_total",
		Help: "Total number of handled HTTP requests",
	}, []string{"route", "method", "status"})

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tamiltv_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"route"})

	// PlaylistRefreshTotal counts registry refresh attempts by outcome
	// (fresh, stale, empty).
	PlaylistRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tamiltv_playlist_refresh_total",
		Help: "Total number of playlist refresh attempts by outcome",
	}, []string{"outcome"})

	// PlaylistRefreshDuration tracks the upstream playlist fetch+parse time.
	PlaylistRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tamiltv_playlist_refresh_duration_seconds",
		Help:    "Time taken to fetch and parse the upstream playlist",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	})

	// ChannelCount reports the size of the current registry snapshot.
	ChannelCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tamiltv_channels",
		Help: "Number of channels in the current registry snapshot",
	})

	// StreamResolveTotal counts manifest resolutions by result and kind
	// (master, media, none).
	StreamResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tamiltv_stream_resolve_total",
		Help: "Total number of stream resolution attempts by result and playlist kind",
	}, []string{"result", "kind"})

	// StreamResolveDuration tracks manifest fetch+extract time.
	StreamResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tamiltv_stream_resolve_duration_seconds",
		Help:    "Time taken to fetch a manifest and extract a media URL",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// CacheHitsTotal counts cache hits and misses per cache instance.
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tamiltv_cache_requests_total",
		Help: "Total number of cache lookups by cache name and result",
	}, []string{"cache", "result"})
)

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// IncPlaylistRefresh records a registry refresh outcome.
func IncPlaylistRefresh(outcome string) {
	PlaylistRefreshTotal.WithLabelValues(outcome).Inc()
}

// ObservePlaylistRefresh records the duration of a successful refresh.
func ObservePlaylistRefresh(duration time.Duration) {
	PlaylistRefreshDuration.Observe(duration.Seconds())
}

// SetChannelCount records the current snapshot size.
func SetChannelCount(n int) {
	ChannelCount.Set(float64(n))
}

// IncStreamResolve records a resolution attempt outcome.
func IncStreamResolve(success bool, kind string) {
	result := "failure"
	if success {
		result = "success"
	}
	StreamResolveTotal.WithLabelValues(result, kind).Inc()
}

// ObserveStreamResolve records the duration of a resolution attempt.
func ObserveStreamResolve(duration time.Duration) {
	StreamResolveDuration.Observe(duration.Seconds())
}

// IncCacheLookup records a cache hit or miss for the named cache.
func IncCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheHitsTotal.WithLabelValues(cache, result).Inc()
}
