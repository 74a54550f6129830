// Package pipeline sequences one user message through mood classification,
// event logging, support-message and content generation, journal reflection,
// dual-journal synchronization, and final composition. Every stage has a
// deterministic fallback; Process always returns a complete response.
package pipeline

import (
	"context"

	"github.com/sridhareguram/aura/curator"
	"github.com/sridhareguram/aura/journal"
)

// RankedLabel is one candidate label with its classifier score.
type RankedLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// MoodClassifier ranks candidate mood labels for a text. It may fail; the
// orchestrator falls back to the keyword heuristic.
type MoodClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]RankedLabel, error)
}

// TextGenerator produces free text for a prompt under the given instructions.
type TextGenerator interface {
	GenerateText(ctx context.Context, instructions, prompt string) (string, error)
}

// SpeechSynthesizer speaks a response aloud, best-effort. It reports success
// but the orchestrator never waits on it for the textual response.
type SpeechSynthesizer interface {
	Speak(ctx context.Context, text, mood string) bool
}

// ContentCurator produces the content bundle for a message. Implementations
// absorb their own failures; Curate never fails.
type ContentCurator interface {
	Curate(ctx context.Context, userInput, mood string) curator.ContentBundle
}

// Response is the contract exposed to the routing layer for one processed
// message.
type Response struct {
	Response       string                `json:"response"`
	Mood           string                `json:"mood"`
	Confidence     float64               `json:"confidence"`
	Content        curator.ContentBundle `json:"content"`
	Journal        string                `json:"journal"`
	JournalEntries []journal.Entry       `json:"journal_entries,omitempty"`
	Timestamp      string                `json:"timestamp"`
}
