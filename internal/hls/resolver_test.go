// SPDX-License-Identifier: MIT

package hls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelivtv/tamiltv/internal/cache"
	"github.com/freelivtv/tamiltv/internal/platform/httpx"
)

func newTestResolver(urls *cache.Cache[string, string]) *Resolver {
	return NewResolver(ResolverConfig{
		UserAgent: "Mozilla/5.0 (SMART-TV; test)",
		Referer:   "https://referer.example/",
	}, httpx.NewClient(5*time.Second), urls)
}

func TestResolver_MasterManifest(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "Mozilla/5.0 (SMART-TV; test)", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://referer.example/", r.Header.Get("Referer"))
		w.Write([]byte(masterThreeVariants))
	}))
	defer srv.Close()

	r := newTestResolver(cache.New[string, string](10, time.Hour))
	playlistURL := srv.URL + "/live/index.m3u8"

	resolved, err := r.Resolve(context.Background(), playlistURL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/live/mid/index.m3u8", resolved)

	// Second resolve is served from cache.
	again, err := r.Resolve(context.Background(), playlistURL)
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
	assert.Equal(t, int64(1), requests.Load())
}

func TestResolver_MediaManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(mediaPlaylist))
	}))
	defer srv.Close()

	r := newTestResolver(cache.New[string, string](10, time.Hour))

	resolved, err := r.Resolve(context.Background(), srv.URL+"/live/index.m3u8")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/live/segment1.ts", resolved)
}

func TestResolver_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	urls := cache.New[string, string](10, time.Hour)
	r := newTestResolver(urls)

	_, err := r.Resolve(context.Background(), srv.URL+"/live/index.m3u8")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 0, urls.Len(), "failures must not be cached")
}

func TestResolver_NoStreamInManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("#EXTM3U\n#EXT-X-VERSION:3\n"))
	}))
	defer srv.Close()

	urls := cache.New[string, string](10, time.Hour)
	r := newTestResolver(urls)

	_, err := r.Resolve(context.Background(), srv.URL+"/live/index.m3u8")
	assert.ErrorIs(t, err, ErrNoStream)
	assert.Equal(t, 0, urls.Len(), "failures must not be cached")
}

func TestResolver_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(mediaPlaylist))
	}))
	defer srv.Close()

	r := newTestResolver(cache.New[string, string](10, time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, srv.URL+"/live/index.m3u8")
	assert.Error(t, err)
}
