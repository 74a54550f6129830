package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sridhareguram/aura/memory"
)

const reflectionInstructions = `You are a thoughtful journal keeper. Given a short exchange, write a brief,
poetic reflection from the companion's perspective: two to four sentences,
warm and observant, no lists, no headings. Refer to the visitor as "they".`

// ReflectionGenerator turns the most recent logged exchange into a short
// poetic journal entry, prefixed with a time-of-day marker.
type ReflectionGenerator struct {
	gen TextGenerator
}

func NewReflectionGenerator(gen TextGenerator) *ReflectionGenerator {
	return &ReflectionGenerator{gen: gen}
}

// Reflect writes an entry for the latest event in events. It fails when the
// event window is empty or generation produced nothing.
func (r *ReflectionGenerator) Reflect(ctx context.Context, events []memory.Event) (string, error) {
	if len(events) == 0 {
		return "", fmt.Errorf("no events to reflect on")
	}
	latest := events[len(events)-1]

	prompt := fmt.Sprintf("They said %q and seemed %s about it.",
		condense(latest.UserInput), latest.Mood)

	text, err := r.gen.GenerateText(ctx, reflectionInstructions, prompt)
	if err != nil {
		return "", fmt.Errorf("generating reflection: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("reflection came back empty")
	}

	now := time.Now()
	return fmt.Sprintf("%s %s\n%s", now.Format("15:04"), timeSymbol(now), text), nil
}

// condense keeps quoted user text short enough for a prompt line.
func condense(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 50 {
		text = text[:47] + "..."
	}
	return text
}

func timeSymbol(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "🌄"
	case h >= 12 && h < 17:
		return "☀️"
	case h >= 17 && h < 21:
		return "🌆"
	default:
		return "🌙"
	}
}
