package pipeline

import (
	"strings"

	"github.com/sridhareguram/aura/curator"
)

// fallbackJournalText is the canonical poetic entry substituted when journal
// generation produced nothing usable.
const fallbackJournalText = `Words between us float like leaves —
Carried by winds of understanding...
What patterns might they form when they land?
Some questions need no answers, only contemplation.`

// Bundle caps mirror the curator's: at most three news items and three
// context keyphrases per response.
const (
	maxComposedNews       = 3
	maxComposedKeyphrases = 3
)

type contentKind int

const (
	contentMalformed contentKind = iota
	contentBundle
	contentList
)

// ContentResult is the tagged union of content shapes the composer accepts:
// a well-formed bundle, a positional item list, or malformed/absent content.
type ContentResult struct {
	kind   contentKind
	bundle curator.ContentBundle
	items  []curator.MediaItem
}

func ContentFromBundle(b curator.ContentBundle) ContentResult {
	return ContentResult{kind: contentBundle, bundle: b}
}

// ContentFromItems reinterprets a raw item sequence positionally: the first
// item is the video, the second the music, and the rest become news items.
func ContentFromItems(items []curator.MediaItem) ContentResult {
	return ContentResult{kind: contentList, items: items}
}

func MalformedContent() ContentResult {
	return ContentResult{kind: contentMalformed}
}

// Composed is the normalized output of the composer; every field is
// guaranteed non-empty and the bundle satisfies its structural invariant.
type Composed struct {
	Message string
	Journal string
	Content curator.ContentBundle
}

// Compose normalizes a possibly-partial stage output set into a guaranteed
// valid response body, substituting the canonical fallbacks field by field.
func Compose(mood, message, journalText string, content ContentResult) Composed {
	if strings.TrimSpace(message) == "" {
		message = FallbackMessage(mood)
	}
	if strings.TrimSpace(journalText) == "" {
		journalText = fallbackJournalText
	}
	return Composed{
		Message: message,
		Journal: journalText,
		Content: normalizeContent(content),
	}
}

func normalizeContent(content ContentResult) curator.ContentBundle {
	switch content.kind {
	case contentBundle:
		b := content.bundle
		if b.Video == (curator.MediaItem{}) {
			b.Video = curator.PlaceholderVideo()
		}
		if b.Music == (curator.MediaItem{}) {
			b.Music = curator.PlaceholderMusic()
		}
		if len(b.News) == 0 {
			b.News = []curator.NewsItem{curator.PlaceholderNews()}
		} else if len(b.News) > maxComposedNews {
			b.News = b.News[:maxComposedNews]
		}
		if len(b.ContextKeyphrases) == 0 {
			b.ContextKeyphrases = curator.PlaceholderKeyphrases()
		} else if len(b.ContextKeyphrases) > maxComposedKeyphrases {
			b.ContextKeyphrases = b.ContextKeyphrases[:maxComposedKeyphrases]
		}
		return b

	case contentList:
		b := curator.ContentBundle{
			Video:             curator.PlaceholderVideo(),
			Music:             curator.PlaceholderMusic(),
			News:              []curator.NewsItem{curator.PlaceholderNews()},
			ContextKeyphrases: curator.PlaceholderKeyphrases(),
		}
		items := content.items
		if len(items) > 0 && items[0] != (curator.MediaItem{}) {
			b.Video = items[0]
		}
		if len(items) > 1 && items[1] != (curator.MediaItem{}) {
			b.Music = items[1]
		}
		if len(items) > 2 {
			news := make([]curator.NewsItem, 0, maxComposedNews)
			for _, it := range items[2:] {
				if it.Title == "" && it.URL == "" {
					continue
				}
				news = append(news, curator.NewsItem{
					Title:   it.Title,
					URL:     it.URL,
					Source:  "Trusted Source",
					Snippet: it.Description,
				})
				if len(news) == maxComposedNews {
					break
				}
			}
			if len(news) > 0 {
				b.News = news
			}
		}
		return b

	default:
		return curator.PlaceholderBundle()
	}
}
