package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	Input   string
	DataDir string
	Model   string

	OpenAIKey       string
	YouTubeKey      string
	SpotifyClientID string
	SpotifySecret   string
	TavilyKey       string
	ElevenLabsKey   string

	Speak  bool
	Pretty bool
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("missing -input")
	}
	if c.DataDir == "" {
		return errors.New("missing -data")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.Speak && c.ElevenLabsKey == "" {
		return errors.New("-speak requires an ElevenLabs key (pass -elevenlabs-key or set ELEVEN_LABS_API_KEY)")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		DataDir: filepath.FromSlash("data"),
		Model:   "gpt-4o-mini",
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Input, "input", "", "User message to process (read from stdin when empty)")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory for the event log and journal files")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model to use")
	fs.StringVar(&cfg.OpenAIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.YouTubeKey, "youtube-key", "", "YouTube Data API key (overrides YOUTUBE_API_KEY env var)")
	fs.StringVar(&cfg.SpotifyClientID, "spotify-id", "", "Spotify client id (overrides SPOTIFY_CLIENT_ID env var)")
	fs.StringVar(&cfg.SpotifySecret, "spotify-secret", "", "Spotify client secret (overrides SPOTIFY_CLIENT_SECRET env var)")
	fs.StringVar(&cfg.TavilyKey, "tavily-key", "", "Tavily search API key (overrides TAVILY_API_KEY env var)")
	fs.StringVar(&cfg.ElevenLabsKey, "elevenlabs-key", "", "ElevenLabs API key (overrides ELEVEN_LABS_API_KEY env var)")
	fs.BoolVar(&cfg.Speak, "speak", false, "Synthesize the response as audio")
	fs.BoolVar(&cfg.Pretty, "pretty", true, "Pretty-print the response JSON")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.YouTubeKey == "" {
		cfg.YouTubeKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.SpotifyClientID == "" {
		cfg.SpotifyClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}
	if cfg.SpotifySecret == "" {
		cfg.SpotifySecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}
	if cfg.TavilyKey == "" {
		cfg.TavilyKey = os.Getenv("TAVILY_API_KEY")
	}
	if cfg.ElevenLabsKey == "" {
		cfg.ElevenLabsKey = os.Getenv("ELEVEN_LABS_API_KEY")
	}

	cfg.DataDir = filepath.Clean(cfg.DataDir)
	return cfg, nil
}
