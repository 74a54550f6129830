package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/sridhareguram/aura/curator"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeClient searches the YouTube Data API v3 for video recommendations.
type YouTubeClient struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
	logger     *zap.Logger
}

func NewYouTubeClient(apiKey string, logger *zap.Logger) *YouTubeClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YouTubeClient{
		apiKey:     apiKey,
		baseURL:    defaultYouTubeBaseURL,
		maxResults: 5,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos returns ranked embeddable videos for the query.
func (c *YouTubeClient) SearchVideos(ctx context.Context, query string) ([]curator.MediaItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("videoEmbeddable", "true")
	params.Set("videoDuration", "medium")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search: status %d", resp.StatusCode)
	}

	var body youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("youtube search decode: %w", err)
	}

	items := make([]curator.MediaItem, 0, len(body.Items))
	for _, it := range body.Items {
		if it.ID.VideoID == "" {
			continue
		}
		items = append(items, curator.MediaItem{
			Title:       cleanText(it.Snippet.Title, 100),
			URL:         "https://youtu.be/" + it.ID.VideoID,
			Description: cleanText(it.Snippet.Description, 200),
			Thumbnail:   it.Snippet.Thumbnails.High.URL,
			Artist:      cleanText(it.Snippet.ChannelTitle, 50),
		})
	}
	return items, nil
}
