// Command journal-history prints the merged journal in reverse chronological
// order. It reads both journal files, merges them in memory, and never writes
// back, so it is safe to run alongside the pipeline.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sridhareguram/aura/journal"
)

type Config struct {
	DataDir string
	Limit   int
	Skip    int
	Pretty  bool
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("missing -data")
	}
	if c.Limit < 0 {
		return errors.New("limit must be >= 0")
	}
	if c.Skip < 0 {
		return errors.New("skip must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		DataDir: filepath.FromSlash("data"),
		Limit:   20,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory holding the journal files")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "Max entries to print (0 = all)")
	fs.IntVar(&cfg.Skip, "skip", 0, "Entries to skip from the newest end")
	fs.BoolVar(&cfg.Pretty, "pretty", true, "Pretty-print the entry JSON")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.DataDir = filepath.Clean(cfg.DataDir)
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	logger := zap.NewNop()
	primary := journal.NewStore(filepath.Join(cfg.DataDir, "journal_entries.json"), logger)
	secondary := journal.NewStore(filepath.Join(cfg.DataDir, "journal_history.json"), logger)

	entries := journal.MergedHistory(cfg.Limit, cfg.Skip, primary, secondary)

	enc := json.NewEncoder(os.Stdout)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(entries); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("encode history: %w", err).Error())
		os.Exit(1)
	}
}
