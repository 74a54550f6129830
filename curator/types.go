// Package curator assembles the per-request content bundle: one video, one
// music track, up to three news items, and the context keyphrases. Every
// fetch degrades through a staged cascade so the bundle is always complete.
package curator

import "context"

// MediaItem is one video or music recommendation.
type MediaItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Artist      string `json:"artist"`
	URI         string `json:"uri,omitempty"`
}

// NewsItem is one news recommendation.
type NewsItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// ContentBundle is the composite content structure returned per request.
// Every field is always present and well-formed; missing content is filled
// with the canonical placeholders.
type ContentBundle struct {
	Video             MediaItem  `json:"video"`
	Music             MediaItem  `json:"music"`
	News              []NewsItem `json:"news"`
	ContextKeyphrases []string   `json:"context_keyphrases"`
}

// QueryPlan is the refined search strategy for one user message.
type QueryPlan struct {
	Video     []string `json:"video"`
	News      []string `json:"news"`
	Emotional bool     `json:"emotional"`
}

// QueryPlanner produces refined search queries and classifies whether the
// message calls for emotionally supportive content.
type QueryPlanner interface {
	PlanQueries(ctx context.Context, userInput, mood string) (QueryPlan, error)
}

// VideoSearcher returns ranked video results for a query; an empty slice
// means no results.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string) ([]MediaItem, error)
}

// MusicSearcher returns ranked track results for a query.
type MusicSearcher interface {
	SearchTracks(ctx context.Context, query string) ([]MediaItem, error)
}

// NewsSearcher returns ranked news results for a query.
type NewsSearcher interface {
	SearchNews(ctx context.Context, query string) ([]NewsItem, error)
}
