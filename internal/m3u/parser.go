// SPDX-License-Identifier: MIT

package m3u

import (
	"strings"
)

// attr extracts a quoted EXTINF attribute value like tvg-name="...".
func attr(line, key string) string {
	marker := key + `="`
	idx := strings.Index(line, marker)
	if idx == -1 {
		return ""
	}
	start := idx + len(marker)
	end := strings.Index(line[start:], `"`)
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(line[start : start+end])
}

// Parse walks the playlist line by line and returns the Tamil-bundle
// channels, classified and capped at maxChannels. An #EXTINF line opens
// a pending record; the next line starting with a URI scheme closes it.
// Metadata lines without a following URL are dropped. A duplicated URL
// replaces the earlier record (last write in parse order wins).
func Parse(content string, maxChannels int) []Channel {
	channels := make([]Channel, 0, 64)
	byURL := make(map[string]int)
	var current *Channel

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "#EXTINF"):
			name := attr(line, "tvg-name")
			if name == "" {
				current = nil
				continue
			}
			group := attr(line, "group-title")
			if !Included(name, group) {
				current = nil
				continue
			}
			current = &Channel{
				Name:        name,
				DisplayName: CleanName(name),
				Category:    Classify(name, group),
				Quality:     ClassifyQuality(name),
				Logo:        attr(line, "tvg-logo"),
				TvgID:       attr(line, "tvg-id"),
				Group:       group,
			}

		case strings.HasPrefix(line, "http") && current != nil:
			current.URL = line
			if idx, seen := byURL[line]; seen {
				channels[idx] = *current
			} else {
				byURL[line] = len(channels)
				channels = append(channels, *current)
			}
			current = nil
			if maxChannels > 0 && len(channels) >= maxChannels {
				return channels
			}
		}
	}
	return channels
}
