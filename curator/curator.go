package curator

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxNewsItems  = 3
	maxQueryChars = 100

	// Fixed allow-list appended to emotional news queries before falling
	// back to an unfiltered search.
	positiveNewsFilter = "site:goodnewsnetwork.org OR site:positive.news"
)

var emotionalKeywords = []string{"feel", "sad", "happy", "angry", "upset", "love", "lonely", "depressed"}

// Curator fetches video, music, and news content for a user message with a
// per-type fallback cascade: refined query, then the raw input, then the
// canonical placeholder. Search failures degrade, they never abort.
type Curator struct {
	planner QueryPlanner
	videos  VideoSearcher
	music   MusicSearcher
	news    NewsSearcher
	logger  *zap.Logger
}

func New(planner QueryPlanner, videos VideoSearcher, music MusicSearcher, news NewsSearcher, logger *zap.Logger) *Curator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Curator{planner: planner, videos: videos, music: music, news: news, logger: logger}
}

// Curate returns a complete content bundle for the message. If every content
// type falls through its whole cascade, the result is exactly
// PlaceholderBundle.
func (c *Curator) Curate(ctx context.Context, userInput, mood string) ContentBundle {
	plan := c.plan(ctx, userInput, mood)

	videoQuery := firstQuery(plan.Video, userInput)
	newsQuery := firstQuery(plan.News, userInput)

	var (
		video         MediaItem
		music         MediaItem
		news          []NewsItem
		videoFellBack bool
		musicFellBack bool
		newsFellBack  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		video, videoFellBack = c.fetchVideo(gctx, videoQuery, userInput)
		return nil
	})
	g.Go(func() error {
		music, musicFellBack = c.fetchMusic(gctx, videoQuery, userInput)
		return nil
	})
	g.Go(func() error {
		news, newsFellBack = c.fetchNews(gctx, newsQuery, userInput, plan.Emotional)
		return nil
	})
	_ = g.Wait()

	if videoFellBack && musicFellBack && newsFellBack {
		return PlaceholderBundle()
	}

	return ContentBundle{
		Video:             video,
		Music:             music,
		News:              news,
		ContextKeyphrases: ExtractKeyphrases(userInput),
	}
}

func (c *Curator) plan(ctx context.Context, userInput, mood string) QueryPlan {
	if c.planner != nil {
		plan, err := c.planner.PlanQueries(ctx, userInput, mood)
		if err == nil {
			if plan.Video == nil {
				plan.Video = []string{userInput}
			}
			if plan.News == nil {
				plan.News = []string{userInput}
			}
			return plan
		}
		c.logger.Warn("query planning failed, using raw input", zap.Error(err))
	}
	return QueryPlan{
		Video:     []string{userInput},
		News:      []string{userInput},
		Emotional: looksEmotional(userInput),
	}
}

func (c *Curator) fetchVideo(ctx context.Context, query, original string) (MediaItem, bool) {
	if c.videos == nil {
		return PlaceholderVideo(), true
	}
	for _, q := range cascadeQueries(query, original) {
		results, err := c.videos.SearchVideos(ctx, q)
		if err != nil {
			c.logger.Warn("video search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		if len(results) > 0 {
			return results[0], false
		}
	}
	return PlaceholderVideo(), true
}

func (c *Curator) fetchMusic(ctx context.Context, query, original string) (MediaItem, bool) {
	if c.music == nil {
		return PlaceholderMusic(), true
	}
	for _, q := range cascadeQueries(query, original) {
		results, err := c.music.SearchTracks(ctx, q)
		if err != nil {
			c.logger.Warn("music search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		if len(results) > 0 {
			return results[0], false
		}
	}
	return PlaceholderMusic(), true
}

func (c *Curator) fetchNews(ctx context.Context, query, original string, emotional bool) ([]NewsItem, bool) {
	if c.news == nil {
		return []NewsItem{PlaceholderNews()}, true
	}

	primary := query
	if emotional {
		primary = strings.TrimSpace(query + " " + positiveNewsFilter)
	}

	for _, q := range []string{primary, original} {
		results, err := c.news.SearchNews(ctx, q)
		if err != nil {
			c.logger.Warn("news search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		if items := dedupeNews(results); len(items) > 0 {
			return items, false
		}
	}
	return []NewsItem{PlaceholderNews()}, true
}

// cascadeQueries yields the refined query followed by the raw input, skipping
// a duplicate second attempt when they collapse to the same string.
func cascadeQueries(refined, original string) []string {
	first := cleanQuery(refined, original)
	second := cleanQuery(original, original)
	if first == second {
		return []string{first}
	}
	return []string{first, second}
}

func dedupeNews(items []NewsItem) []NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]NewsItem, 0, maxNewsItems)
	for _, it := range items {
		if it.URL == "" {
			continue
		}
		if _, ok := seen[it.URL]; ok {
			continue
		}
		seen[it.URL] = struct{}{}
		out = append(out, it)
		if len(out) == maxNewsItems {
			break
		}
	}
	return out
}

// cleanQuery strips punctuation and caps the query length, substituting the
// original input when cleaning leaves nothing.
func cleanQuery(query, original string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			return r
		}
		return -1
	}, query)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = strings.TrimSpace(original)
	}
	if len(cleaned) > maxQueryChars {
		cleaned = cleaned[:maxQueryChars]
	}
	return cleaned
}

func firstQuery(queries []string, fallback string) string {
	for _, q := range queries {
		if strings.TrimSpace(q) != "" {
			return q
		}
	}
	return fallback
}

// ExtractKeyphrases returns up to three unique lowercase words from the text,
// or a generic phrase when the text is empty.
func ExtractKeyphrases(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, 3)
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return []string{"general information"}
	}
	return out
}

func looksEmotional(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range emotionalKeywords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
