// SPDX-License-Identifier: MIT

// Package m3u turns the upstream M3U playlist into the channel registry
// served by the addon.
package m3u

// Category classifies a channel for catalog grouping.
type Category string

const (
	CategoryCricket       Category = "Cricket"
	CategoryMovies        Category = "Movies"
	CategoryNews          Category = "News"
	CategoryMusic         Category = "Music"
	CategoryKids          Category = "Kids"
	CategoryDevotional    Category = "Devotional"
	CategoryEntertainment Category = "Entertainment"
)

// Quality is the stream quality tier derived from name markers.
type Quality string

const (
	QualitySD  Quality = "SD"
	QualityHD  Quality = "HD"
	QualityFHD Quality = "FHD"
	Quality4K  Quality = "4K"
)

// Channel represents a single channel parsed from the playlist.
// URL is the natural key: no two channels in one snapshot share it.
type Channel struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Category    Category `json:"category"`
	Quality     Quality  `json:"quality"`
	Logo        string   `json:"logo,omitempty"`
	TvgID       string   `json:"tvg_id,omitempty"`
	Group       string   `json:"group"`
	URL         string   `json:"url"`
}
