// SPDX-License-Identifier: MIT

// Package addon maps Stremio catalog/meta/stream lookups onto the
// channel registry and stream resolver.
package addon

// Manifest is the addon manifest document served at /manifest.json.
type Manifest struct {
	ID            string        `json:"id"`
	Version       string        `json:"version"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Logo          string        `json:"logo,omitempty"`
	Types         []string      `json:"types"`
	Catalogs      []Catalog     `json:"catalogs"`
	Resources     []string      `json:"resources"`
	IDPrefixes    []string      `json:"idPrefixes"`
	BehaviorHints ManifestHints `json:"behaviorHints"`
}

// ManifestHints carries addon-level behavior flags.
type ManifestHints struct {
	Adult bool `json:"adult"`
	P2P   bool `json:"p2p"`
}

// Catalog declares one catalog in the manifest.
type Catalog struct {
	Type  string  `json:"type"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Extra []Extra `json:"extra,omitempty"`
}

// Extra declares an extra parameter a catalog accepts.
type Extra struct {
	Name string `json:"name"`
}

// Meta is one catalog/meta item on the wire.
type Meta struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	Poster        string     `json:"poster,omitempty"`
	PosterShape   string     `json:"posterShape,omitempty"`
	Background    string     `json:"background,omitempty"`
	Description   string     `json:"description,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	ReleaseInfo   string     `json:"releaseInfo,omitempty"`
	Runtime       string     `json:"runtime,omitempty"`
	Videos        []Video    `json:"videos,omitempty"`
	BehaviorHints *MetaHints `json:"behaviorHints,omitempty"`
}

// MetaHints carries per-item behavior flags.
type MetaHints struct {
	DefaultVideoID     string `json:"defaultVideoId,omitempty"`
	HasScheduledVideos bool   `json:"hasScheduledVideos"`
}

// Video is the synthetic "live" video entry inside a meta.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Released  string `json:"released"`
	Available bool   `json:"available"`
}

// Stream is one playable stream on the wire.
type Stream struct {
	URL           string      `json:"url"`
	Title         string      `json:"title"`
	Name          string      `json:"name"`
	BehaviorHints StreamHints `json:"behaviorHints"`
}

// StreamHints carries per-stream behavior flags.
type StreamHints struct {
	NotWebReady bool `json:"notWebReady"`
}

// CatalogExtra holds the optional extra parameters of a catalog request.
type CatalogExtra struct {
	Search string
	Genre  string
	Skip   int
}
