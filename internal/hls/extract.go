// SPDX-License-Identifier: MIT

// Package hls resolves an HLS playlist URL into one concrete,
// currently-playable media URL.
package hls

import (
	"bufio"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/freelivtv/tamiltv/internal/core/urlutil"
)

// Playlist kinds reported alongside extraction results.
const (
	KindMaster = "master"
	KindMedia  = "media"
	KindNone   = "none"
)

// ErrNoStream reports a manifest from which no media URL could be
// derived. Callers fall back to the original playlist URL.
var ErrNoStream = errors.New("hls: no stream url found")

// Variant is one bitrate/resolution option within a master playlist.
type Variant struct {
	URL        string
	Bandwidth  int
	Resolution string
}

var (
	reBandwidth  = regexp.MustCompile(`BANDWIDTH=(\d+)`)
	reResolution = regexp.MustCompile(`RESOLUTION=(\d+x\d+)`)
)

// Extract derives a concrete media URL from manifest content. The
// returned kind names the detected playlist type for observability.
//
// Master playlists: every #EXT-X-STREAM-INF variant is collected with
// its declared bandwidth (0 when absent) and resolution ("unknown" when
// absent); variants are ordered by descending bandwidth (stable, so
// ties keep input order) and the middle one is selected. The highest
// bitrate often exceeds the decode headroom of constrained TV devices,
// so stability wins over maximum quality here.
//
// Media playlists: the first non-comment line that references a segment
// or sub-manifest is used. Relative references resolve against the
// directory of baseURL.
func Extract(content, baseURL string) (string, string, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	if isMaster(lines) {
		url, err := extractFromMaster(lines, baseURL)
		if err != nil {
			return "", KindMaster, err
		}
		return url, KindMaster, nil
	}

	url, err := extractFromMedia(lines, baseURL)
	if err != nil {
		return "", KindNone, err
	}
	return url, KindMedia, nil
}

func isMaster(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "#EXT-X-STREAM-INF") {
			return true
		}
	}
	return false
}

// ScanVariants collects every variant declared in a master playlist.
func ScanVariants(lines []string) []Variant {
	var variants []Variant
	for i, line := range lines {
		if !strings.Contains(line, "#EXT-X-STREAM-INF") {
			continue
		}

		bandwidth := 0
		if m := reBandwidth.FindStringSubmatch(line); m != nil {
			bandwidth, _ = strconv.Atoi(m[1])
		}
		resolution := "unknown"
		if m := reResolution.FindStringSubmatch(line); m != nil {
			resolution = m[1]
		}

		// The variant URL is the next non-comment line.
		for j := i + 1; j < len(lines); j++ {
			if !strings.HasPrefix(lines[j], "#") {
				variants = append(variants, Variant{
					URL:        lines[j],
					Bandwidth:  bandwidth,
					Resolution: resolution,
				})
				break
			}
		}
	}
	return variants
}

// SelectVariant orders variants by descending bandwidth and returns the
// middle element. The sort is stable: equal bandwidths keep their
// original relative order.
func SelectVariant(variants []Variant) (Variant, bool) {
	if len(variants) == 0 {
		return Variant{}, false
	}
	sorted := make([]Variant, len(variants))
	copy(sorted, variants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bandwidth > sorted[j].Bandwidth
	})
	return sorted[len(sorted)/2], true
}

func extractFromMaster(lines []string, baseURL string) (string, error) {
	selected, ok := SelectVariant(ScanVariants(lines))
	if !ok {
		return "", ErrNoStream
	}
	return urlutil.ResolveAgainst(baseURL, selected.URL), nil
}

func extractFromMedia(lines []string, baseURL string) (string, error) {
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ".ts") || strings.Contains(line, ".m4s") || strings.Contains(line, ".m3u8") {
			return urlutil.ResolveAgainst(baseURL, line), nil
		}
	}
	return "", ErrNoStream
}
