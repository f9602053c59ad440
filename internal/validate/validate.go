// Package validate checks candidate strings against the accepted YouTube
// link shapes. Validation is purely syntactic — no network lookups.
package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// The five accepted link shapes: watch, short link, shorts, playlist, live.
// Scheme and www. prefixes are optional. Patterns are anchored at the start
// only, so extra text after a valid prefix is still accepted.
var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/watch\?v=[\w-]+(&\S*)?`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtu\.be/[\w-]+(\?\S*)?`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/shorts/[\w-]+(\?\S*)?`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/playlist\?list=[\w-]+(&\S*)?`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/live/[\w-]+(\?\S*)?`),
}

// IsValid reports whether the candidate matches one of the accepted
// YouTube link shapes.
func IsValid(candidate string) bool {
	for _, p := range linkPatterns {
		if p.MatchString(candidate) {
			return true
		}
	}
	return false
}

// VideoID extracts the video ID from a watch or short-link URL.
// Returns the empty string when no ID can be derived.
func VideoID(raw string) string {
	u, err := url.Parse(withScheme(raw))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtube.com":
		return u.Query().Get("v")
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	}
	return ""
}

// DisplayTitle derives a human-readable placeholder title from a URL.
// Used until (or in place of) the real title fetched from the watch page.
func DisplayTitle(raw string) string {
	if id := VideoID(raw); id != "" {
		return "Video ID: " + id
	}
	return raw
}

func withScheme(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}
