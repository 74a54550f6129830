// Package search implements the content-search collaborators: YouTube for
// video, Spotify for music, Tavily for news. Each client enforces a fixed
// per-call timeout and returns an empty slice on a miss; only transport and
// decode problems surface as errors.
package search

import (
	"regexp"
	"strings"
	"time"
)

const requestTimeout = 15 * time.Second

var whitespaceRe = regexp.MustCompile(`\s+`)

func cleanText(text string, max int) string {
	if text == "" {
		return ""
	}
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if max > 0 && len(cleaned) > max {
		cleaned = cleaned[:max]
	}
	return cleaned
}
