package curator

// Canonical placeholder content. These values are deterministic on purpose:
// the composer and the cascade both substitute them, and tests compare
// against them field for field.

func PlaceholderVideo() MediaItem {
	return MediaItem{
		Title:       "Guided Meditation for Inner Peace",
		URL:         "https://youtu.be/inpok4MKVLM",
		Description: "A calming meditation to center yourself",
		Thumbnail:   "https://i.ytimg.com/vi/inpok4MKVLM/hqdefault.jpg",
		Artist:      "Goodful",
	}
}

func PlaceholderMusic() MediaItem {
	return MediaItem{
		Title:       "Ambient Relaxation",
		URL:         "https://open.spotify.com/track/0pYacDCZuRhcrwGUA5nTBe",
		Description: "Calming instrumental music",
		Thumbnail:   "https://i.scdn.co/image/ab67616d0000b273d8601e15fa1b4351fe1fc6ae",
		Artist:      "Ambient Sounds",
		URI:         "spotify:track:0pYacDCZuRhcrwGUA5nTBe",
	}
}

func PlaceholderNews() NewsItem {
	return NewsItem{
		Title:   "Finding Joy in Small Moments",
		URL:     "https://www.goodnewsnetwork.org/",
		Source:  "Good News Network",
		Snippet: "Discover how mindful attention to everyday experiences can transform your outlook.",
	}
}

func PlaceholderKeyphrases() []string {
	return []string{"support", "wellness", "mindfulness"}
}

// PlaceholderBundle is the full canonical fallback bundle returned when every
// content source is unavailable.
func PlaceholderBundle() ContentBundle {
	return ContentBundle{
		Video:             PlaceholderVideo(),
		Music:             PlaceholderMusic(),
		News:              []NewsItem{PlaceholderNews()},
		ContextKeyphrases: PlaceholderKeyphrases(),
	}
}
