// SPDX-License-Identifier: MIT

package m3u

import (
	"regexp"
	"strings"
)

// Included reports whether a parsed entry belongs to the Tamil bundle.
// An entry is kept when at least one allow rule matches; everything else
// is discarded before classification.
func Included(name, group string) bool {
	switch {
	case strings.HasPrefix(name, "TM:"):
		return true
	case strings.HasPrefix(strings.ToLower(name), "tamil"):
		return true
	case strings.HasPrefix(group, "FREE LIV TV || TAMIL"):
		return true
	case strings.Contains(group, "FREE LIV TV || CRICKET"):
		return true
	case strings.HasPrefix(name, "24/7:"):
		return true
	}
	return false
}

// categoryRule maps a name/group predicate to a category. Rules are
// evaluated in order, first match wins.
type categoryRule struct {
	match    func(name, group string) bool
	category Category
}

var (
	reCricket    = regexp.MustCompile(`(?i)cricket`)
	reMovie      = regexp.MustCompile(`(?i)movie`)
	reNews       = regexp.MustCompile(`(?i)news`)
	reMusic      = regexp.MustCompile(`(?i)music`)
	reKids       = regexp.MustCompile(`(?i)kids|cartoon`)
	reDevotional = regexp.MustCompile(`(?i)devotional|religious|god`)

	re4K  = regexp.MustCompile(`(?i)4k|⁴ᵏ|uhd`)
	reFHD = regexp.MustCompile(`(?i)fhd|ᶠᴴᴰ|1080`)
	reHD  = regexp.MustCompile(`(?i)hd|ᴴᴰ|720`)
)

var categoryRules = []categoryRule{
	{func(n, g string) bool {
		return strings.Contains(g, "CRICKET") || reCricket.MatchString(n) || strings.HasPrefix(n, "CRIC ||")
	}, CategoryCricket},
	{func(n, g string) bool { return strings.Contains(g, "MOVIES") || reMovie.MatchString(n) }, CategoryMovies},
	{func(n, g string) bool { return strings.Contains(g, "NEWS") || reNews.MatchString(n) }, CategoryNews},
	{func(n, g string) bool { return strings.Contains(g, "MUSIC") || reMusic.MatchString(n) }, CategoryMusic},
	{func(n, g string) bool { return strings.Contains(g, "KIDS") || reKids.MatchString(n) }, CategoryKids},
	{func(n, g string) bool { return reDevotional.MatchString(n) }, CategoryDevotional},
}

// Classify derives the category for a channel name and group label.
// Unmatched entries fall through to Entertainment.
func Classify(name, group string) Category {
	for _, rule := range categoryRules {
		if rule.match(name, group) {
			return rule.category
		}
	}
	return CategoryEntertainment
}

// qualityRule maps a name pattern to a quality tier, first match wins.
type qualityRule struct {
	pattern *regexp.Regexp
	quality Quality
}

var qualityRules = []qualityRule{
	{re4K, Quality4K},
	{reFHD, QualityFHD},
	{reHD, QualityHD},
}

// ClassifyQuality derives the quality tier from name markers, defaulting
// to SD when no marker is present.
func ClassifyQuality(name string) Quality {
	for _, rule := range qualityRules {
		if rule.pattern.MatchString(name) {
			return rule.quality
		}
	}
	return QualitySD
}

var displayReplacer = strings.NewReplacer(
	"ᶠᴴᴰ", " FHD",
	"ᴴᴰ", " HD",
	"⁴ᵏ", " 4K",
)

var (
	reTMPrefix    = regexp.MustCompile(`(?i)^TM:\s*`)
	reCricPrefix  = regexp.MustCompile(`(?i)^CRIC\s*\|\|\s*`)
	reTamilPrefix = regexp.MustCompile(`(?i)^Tamil:\s*`)
)

// CleanName strips upstream decorations from a raw channel name so the
// catalog shows a readable title.
func CleanName(name string) string {
	s := reTMPrefix.ReplaceAllString(name, "")
	s = reCricPrefix.ReplaceAllString(s, "🏏 ")
	s = reTamilPrefix.ReplaceAllString(s, "")
	s = displayReplacer.Replace(s)
	return strings.TrimSpace(s)
}
