// SPDX-License-Identifier: MIT

// Package keepalive pings the service's own public URL on an interval
// so free-tier hosts do not idle the process out.
package keepalive

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelivtv/tamiltv/internal/log"
)

// initialDelay postpones the first ping until the server is up.
const initialDelay = 30 * time.Second

// Stats reflects the pinger's current state for the status endpoint.
type Stats struct {
	Enabled   bool          `json:"enabled"`
	Running   bool          `json:"running"`
	PingCount int64         `json:"pingCount"`
	LastPing  time.Time     `json:"lastPingTime,omitzero"`
	Errors    int64         `json:"pingErrors"`
	Interval  time.Duration `json:"interval"`
}

// Pinger periodically fetches url to keep the host warm.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client

	mu       sync.Mutex
	running  bool
	count    int64
	errors   int64
	lastPing time.Time
}

// New creates a Pinger. It does not start anything.
func New(url string, interval time.Duration, client *http.Client) *Pinger {
	return &Pinger{url: url, interval: interval, client: client}
}

// Enabled reports whether this pinger has a usable target. Localhost
// targets are pointless (the process would be keeping itself awake) and
// are treated as disabled.
func (p *Pinger) Enabled() bool {
	return p.url != "" && !strings.Contains(p.url, "localhost") && !strings.Contains(p.url, "127.0.0.1")
}

// Run pings the target on the configured interval until ctx is
// cancelled. The first ping is delayed so the server can finish
// starting. Run returns nil on cancellation.
func (p *Pinger) Run(ctx context.Context) error {
	logger := log.WithComponent("keepalive")

	if !p.Enabled() {
		logger.Info().Msg("keep-alive disabled (no public URL)")
		return nil
	}

	logger.Info().
		Str("url", p.url).
		Dur("interval", p.interval).
		Msg("keep-alive started")

	p.mu.Lock()
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return nil
	case <-time.After(initialDelay):
		p.ping(ctx, logger)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("keep-alive stopped")
			return nil
		case <-ticker.C:
			p.ping(ctx, logger)
		}
	}
}

// Stats returns a snapshot of the pinger counters.
func (p *Pinger) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Enabled:   p.Enabled(),
		Running:   p.running,
		PingCount: p.count,
		LastPing:  p.lastPing,
		Errors:    p.errors,
		Interval:  p.interval,
	}
}

func (p *Pinger) ping(ctx context.Context, logger zerolog.Logger) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.recordError()
		logger.Error().Err(err).Msg("keep-alive request build failed")
		return
	}
	req.Header.Set("User-Agent", "KeepAlive/1.0")

	res, err := p.client.Do(req)
	if err != nil {
		p.recordError()
		logger.Error().Err(err).Msg("keep-alive ping failed")
		return
	}
	defer res.Body.Close()

	p.mu.Lock()
	p.count++
	p.errors = 0
	p.lastPing = time.Now()
	count := p.count
	p.mu.Unlock()

	logger.Debug().
		Int64("ping", count).
		Int("status", res.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("keep-alive ping")
}

func (p *Pinger) recordError() {
	p.mu.Lock()
	p.errors++
	p.mu.Unlock()
}
