// SPDX-License-Identifier: MIT

package m3u

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncluded(t *testing.T) {
	tests := []struct {
		name  string
		ch    string
		group string
		want  bool
	}{
		{"tm prefix", "TM: Sun TV", "ANY", true},
		{"lowercase tamil prefix", "tamil hits", "ANY", true},
		{"mixed-case tamil prefix", "Tamil Vision", "ANY", true},
		{"tamil group prefix", "Some Channel", "FREE LIV TV || TAMIL HD", true},
		{"cricket group anywhere", "Star Sports 1", "XX FREE LIV TV || CRICKET YY", true},
		{"24x7 prefix", "24/7: Comedy", "ANY", true},
		{"tamil not at name start", "Best tamil songs", "OTHER", false},
		{"unrelated", "Hindi News", "HINDI || NEWS", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Included(tc.ch, tc.group))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		ch    string
		group string
		want  Category
	}{
		{"cricket group", "Star Sports", "FREE LIV TV || CRICKET", CategoryCricket},
		{"cricket name", "TM: Cricket Extra", "", CategoryCricket},
		{"cric prefix", "CRIC || IND vs AUS", "", CategoryCricket},
		{"movies group", "TM: KTV", "FREE LIV TV || TAMIL MOVIES", CategoryMovies},
		{"movie in name", "Tamil Movie Central", "", CategoryMovies},
		{"news", "TM: Puthiya Thalaimurai News", "", CategoryNews},
		{"music", "TM: Sun Music", "", CategoryMusic},
		{"kids cartoon", "TM: Chutti Cartoon", "", CategoryKids},
		{"devotional", "TM: Devotional Bhakti", "", CategoryDevotional},
		{"default entertainment", "TM: Sun TV", "FREE LIV TV || TAMIL", CategoryEntertainment},
		// Cricket outranks movies when both match.
		{"cricket beats movies", "Cricket Movie Special", "FREE LIV TV || CRICKET", CategoryCricket},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.ch, tc.group))
		})
	}
}

func TestClassifyQuality(t *testing.T) {
	tests := []struct {
		name string
		ch   string
		want Quality
	}{
		{"4k marker", "TM: Sun TV 4K", Quality4K},
		{"uhd marker", "TM: Sun TV UHD", Quality4K},
		{"superscript 4k", "TM: Sun TV ⁴ᵏ", Quality4K},
		{"fhd marker", "TM: Sun TV FHD", QualityFHD},
		{"1080 marker", "TM: Sun TV 1080p", QualityFHD},
		{"superscript fhd", "TM: Sun TV ᶠᴴᴰ", QualityFHD},
		{"hd marker", "TM: Sun TV HD", QualityHD},
		{"720 marker", "TM: Sun TV 720p", QualityHD},
		{"no marker", "TM: Sun TV", QualitySD},
		// FHD must win over the HD substring it contains.
		{"fhd beats hd substring", "TM: KTV FHD", QualityFHD},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyQuality(tc.ch))
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tm prefix stripped", "TM: Sun TV", "Sun TV"},
		{"tm prefix no space", "TM:Sun TV", "Sun TV"},
		{"cric prefix becomes icon", "CRIC || IND vs AUS", "🏏 IND vs AUS"},
		{"tamil prefix stripped", "Tamil: Vijay TV", "Vijay TV"},
		{"superscript hd expanded", "TM: Sun TVᴴᴰ", "Sun TV HD"},
		{"superscript fhd expanded", "TM: KTVᶠᴴᴰ", "KTV FHD"},
		{"superscript 4k expanded", "TM: Sun TV⁴ᵏ", "Sun TV 4K"},
		{"plain name untouched", "Star Vijay", "Star Vijay"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanName(tc.in))
		})
	}
}
