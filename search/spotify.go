package search

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sridhareguram/aura/curator"
)

const (
	defaultSpotifyAccountsURL = "https://accounts.spotify.com"
	defaultSpotifyAPIURL      = "https://api.spotify.com/v1"

	// Renew slightly before Spotify's stated expiry to avoid using a token
	// that dies mid-request.
	tokenExpirySlack = 30 * time.Second
)

// SpotifyClient searches the Spotify Web API for track recommendations using
// the client-credentials flow. Concurrent token refreshes are collapsed into
// one request.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	accountsURL  string
	apiURL       string
	httpClient   *http.Client
	logger       *zap.Logger

	tokenGroup singleflight.Group
	mu         sync.Mutex
	token      string
	tokenExp   time.Time
}

func NewSpotifyClient(clientID, clientSecret string, logger *zap.Logger) *SpotifyClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpotifyClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		accountsURL:  defaultSpotifyAccountsURL,
		apiURL:       defaultSpotifyAPIURL,
		httpClient:   &http.Client{Timeout: requestTimeout},
		logger:       logger,
	}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *SpotifyClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	v, err, _ := c.tokenGroup.Do("token", func() (any, error) {
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *SpotifyClient) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("spotify token request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify token: status %d", resp.StatusCode)
	}

	var body spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("spotify token decode: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("spotify token: empty access_token")
	}

	c.mu.Lock()
	c.token = body.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - tokenExpirySlack)
	c.mu.Unlock()

	return body.AccessToken, nil
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []struct {
			Name    string `json:"name"`
			URI     string `json:"uri"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"tracks"`
}

// SearchTracks returns ranked tracks for the query.
func (c *SpotifyClient) SearchTracks(ctx context.Context, query string) ([]curator.MediaItem, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify search: status %d", resp.StatusCode)
	}

	var body spotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify search decode: %w", err)
	}

	items := make([]curator.MediaItem, 0, len(body.Tracks.Items))
	for _, tr := range body.Tracks.Items {
		item := curator.MediaItem{
			Title:       cleanText(tr.Name, 100),
			URL:         tr.ExternalURLs.Spotify,
			Description: "Listen on Spotify",
			URI:         tr.URI,
		}
		if len(tr.Artists) > 0 {
			item.Artist = cleanText(tr.Artists[0].Name, 50)
		}
		if len(tr.Album.Images) > 0 {
			item.Thumbnail = tr.Album.Images[0].URL
		}
		items = append(items, item)
	}
	return items, nil
}
