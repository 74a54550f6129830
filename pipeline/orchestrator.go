package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sridhareguram/aura/curator"
	"github.com/sridhareguram/aura/journal"
	"github.com/sridhareguram/aura/memory"
)

const (
	emotionalInstructions = `You are a warm, empathetic companion. The visitor seems %s. Respond with a
short supportive message, two or three sentences, that acknowledges how they
feel without diagnosing or advising. Speak directly to them.`

	factualInstructions = `You are a helpful, concise assistant. Answer the question directly in two or
three sentences, then add one short warm closing line.`

	// speechTimeout bounds the detached synthesis goroutine; the textual
	// response never waits on it.
	speechTimeout = 30 * time.Second
)

const fallbackApology = "Like whispers in fog, our connection faded for a moment... Shall we try again?"

// Orchestrator runs the full per-message pipeline. Every collaborator except
// the journal stores and event log may be degraded or failing; Process always
// produces a complete response.
type Orchestrator struct {
	classifier  MoodClassifier
	textgen     TextGenerator
	curator     ContentCurator
	events      *memory.EventLog
	primary     *journal.Store
	secondary   *journal.Store
	reflections *ReflectionGenerator
	speech      SpeechSynthesizer
	logger      *zap.Logger
}

// New wires an orchestrator. speech may be nil to disable synthesis.
func New(
	classifier MoodClassifier,
	textgen TextGenerator,
	contentCurator ContentCurator,
	events *memory.EventLog,
	primary, secondary *journal.Store,
	speech SpeechSynthesizer,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		classifier:  classifier,
		textgen:     textgen,
		curator:     contentCurator,
		events:      events,
		primary:     primary,
		secondary:   secondary,
		reflections: NewReflectionGenerator(textgen),
		speech:      speech,
		logger:      logger,
	}
}

// Process runs one user message through the pipeline and returns the composed
// response. Individual stage failures degrade to their canonical fallbacks; a
// cancelled context yields the deterministic full-fallback response.
func (o *Orchestrator) Process(ctx context.Context, userInput string) Response {
	if err := ctx.Err(); err != nil {
		o.logger.Warn("pipeline aborted before start", zap.Error(err))
		return o.fallbackResponse(userInput)
	}

	mood, confidence := o.detectMood(ctx, userInput)
	o.events.StoreEvent(userInput, mood, confidence)

	var (
		message string
		content curator.ContentBundle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		message = o.supportMessage(gctx, userInput, mood)
		return nil
	})
	g.Go(func() error {
		content = o.curator.Curate(gctx, userInput, mood)
		return nil
	})
	_ = g.Wait()

	entryText, err := o.reflections.Reflect(ctx, o.events.Recent(memory.DefaultRecent))
	if err != nil {
		o.logger.Warn("reflection failed, using fallback entry", zap.Error(err))
		entryText = fallbackJournalEntry(time.Now())
	}

	if _, err := o.primary.Append(entryText, userInput, mood, message); err != nil {
		o.logger.Error("journal append did not persist", zap.Error(err))
	}
	journal.Sync(o.primary, o.secondary)

	composed := Compose(mood, message, entryText, ContentFromBundle(content))

	o.speakDetached(composed.Message, mood)

	return Response{
		Response:       composed.Message,
		Mood:           mood,
		Confidence:     confidence,
		Content:        composed.Content,
		Journal:        composed.Journal,
		JournalEntries: o.primary.History(memory.DefaultRecent, 0),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
}

// detectMood classifies the input, normalizing the top label and bucketing its
// score. Classifier failure drops to the keyword heuristic at low confidence.
func (o *Orchestrator) detectMood(ctx context.Context, userInput string) (string, float64) {
	ranked, err := o.classifier.Classify(ctx, userInput, candidateLabels)
	if err != nil || len(ranked) == 0 {
		o.logger.Warn("classifier unavailable, using keyword heuristic", zap.Error(err))
		return HeuristicMood(userInput), ConfidenceValue("not very confident")
	}
	top := ranked[0]
	return normalizeMood(top.Label), ConfidenceValue(confidenceBucket(top.Score))
}

func (o *Orchestrator) supportMessage(ctx context.Context, userInput, mood string) string {
	instructions := fmt.Sprintf(emotionalInstructions, mood)
	if looksFactual(userInput) {
		instructions = factualInstructions
	}
	message, err := o.textgen.GenerateText(ctx, instructions, userInput)
	if err != nil {
		o.logger.Warn("support message generation failed", zap.String("mood", mood), zap.Error(err))
		return FallbackMessage(mood)
	}
	return message
}

// speakDetached synthesizes in the background with its own deadline so a slow
// voice call never delays the response.
func (o *Orchestrator) speakDetached(text, mood string) {
	if o.speech == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()
		o.speech.Speak(ctx, text, mood)
	}()
}

// fallbackResponse is the deterministic pipeline-wide fallback: a reflective
// apology, placeholder content, and a dated lapse entry appended through the
// secondary writer, then synchronized so both stores carry it.
func (o *Orchestrator) fallbackResponse(userInput string) Response {
	entryText := fallbackJournalEntry(time.Now())
	if _, err := o.secondary.Append(entryText, userInput, "reflective", fallbackApology); err != nil {
		o.logger.Error("fallback journal append did not persist", zap.Error(err))
	}
	journal.Sync(o.primary, o.secondary)

	return Response{
		Response:       fallbackApology,
		Mood:           "reflective",
		Confidence:     0,
		Content:        curator.PlaceholderBundle(),
		Journal:        entryText,
		JournalEntries: o.primary.History(memory.DefaultRecent, 0),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
}

func fallbackJournalEntry(now time.Time) string {
	return fmt.Sprintf("Journal Entry - %s\n\nIn the quiet spaces between words, there was a moment of stillness today. Technology, like humans, sometimes needs a pause to gather itself.",
		now.Format("Monday, January 2, 2006, 3:04 PM"))
}
