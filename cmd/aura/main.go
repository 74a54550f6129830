package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/sridhareguram/aura/curator"
	"github.com/sridhareguram/aura/journal"
	"github.com/sridhareguram/aura/memory"
	"github.com/sridhareguram/aura/pipeline"
	"github.com/sridhareguram/aura/provider"
	"github.com/sridhareguram/aura/search"
	"github.com/sridhareguram/aura/speech"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if cfg.Input == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("read stdin: %w", err).Error())
			os.Exit(2)
		}
		cfg.Input = strings.TrimSpace(string(b))
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if cfg.OpenAIKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("mkdir -data: %w", err).Error())
		os.Exit(2)
	}

	oaiClient := openai.NewClient(option.WithAPIKey(cfg.OpenAIKey))
	models := provider.NewClient(&oaiClient, cfg.Model, logger)

	contentCurator := curator.New(
		models,
		search.NewYouTubeClient(cfg.YouTubeKey, logger),
		search.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifySecret, logger),
		search.NewTavilyClient(cfg.TavilyKey, logger),
		logger,
	)

	events := memory.NewEventLog(filepath.Join(cfg.DataDir, "user_states.json"), logger)
	primary := journal.NewStore(filepath.Join(cfg.DataDir, "journal_entries.json"), logger)
	secondary := journal.NewStore(filepath.Join(cfg.DataDir, "journal_history.json"), logger)

	var voice pipeline.SpeechSynthesizer
	if cfg.Speak {
		voice = speech.NewClient(cfg.ElevenLabsKey, logger)
	}

	orch := pipeline.New(models, models, contentCurator, events, primary, secondary, voice, logger)
	resp := orch.Process(ctx, cfg.Input)

	enc := json.NewEncoder(os.Stdout)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("encode response: %w", err).Error())
		os.Exit(1)
	}
}
