// Package speech synthesizes spoken responses through the ElevenLabs API.
// Synthesis is best-effort: every failure is logged and reported as false,
// and the textual response never waits on it.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultVoiceID = "Xb7hH8MSUJpSbSDYk0k2"
	modelID        = "eleven_monolingual_v1"

	requestTimeout = 20 * time.Second
	maxSpokenChars = 500
)

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Client converts response text to speech, writing the synthesized audio to
// a file under outDir.
type Client struct {
	apiKey     string
	voiceID    string
	baseURL    string
	outDir     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     apiKey,
		voiceID:    defaultVoiceID,
		baseURL:    defaultBaseURL,
		outDir:     os.TempDir(),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// settingsForMood tunes voice delivery per detected mood.
func settingsForMood(mood string) voiceSettings {
	switch mood {
	case "sad", "depressed", "lonely":
		return voiceSettings{Stability: 0.7, SimilarityBoost: 0.8}
	case "happy", "excited":
		return voiceSettings{Stability: 0.5, SimilarityBoost: 0.75}
	case "anxious", "confused":
		return voiceSettings{Stability: 0.8, SimilarityBoost: 0.7}
	default:
		return voiceSettings{Stability: 0.6, SimilarityBoost: 0.75}
	}
}

// Speak synthesizes the text and reports whether audio was produced.
func (c *Client) Speak(ctx context.Context, text, mood string) bool {
	if text == "" || c.apiKey == "" {
		return false
	}
	if len(text) > maxSpokenChars {
		text = text[:maxSpokenChars-3] + "..."
	}

	payload, err := json.Marshal(synthesizeRequest{
		Text:          text,
		ModelID:       modelID,
		VoiceSettings: settingsForMood(mood),
	})
	if err != nil {
		c.logger.Error("tts marshal failed", zap.Error(err))
		return false
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("tts request failed", zap.Error(err))
		return false
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("tts call failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("tts call rejected", zap.Int("status", resp.StatusCode))
		return false
	}

	outPath := filepath.Join(c.outDir, fmt.Sprintf("aura_response_%d.mp3", time.Now().Unix()))
	f, err := os.Create(outPath)
	if err != nil {
		c.logger.Error("tts output create failed", zap.String("path", outPath), zap.Error(err))
		return false
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		c.logger.Error("tts output write failed", zap.String("path", outPath), zap.Error(err))
		return false
	}

	c.logger.Info("spoken response synthesized", zap.String("path", outPath), zap.String("mood", mood))
	return true
}
