package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sridhareguram/aura/curator"
	"github.com/sridhareguram/aura/journal"
	"github.com/sridhareguram/aura/memory"
)

func TestConfidenceValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want float64
	}{
		{text: "extremely confident", want: 0.95},
		{text: "very confident", want: 0.85},
		{text: "moderately confident", want: 0.7},
		{text: "not very confident", want: 0.4},
		{text: "Very Confident", want: 0.85},
		{text: "  extremely confident  ", want: 0.95},
		{text: "somewhat confident", want: 0.5},
		{text: "", want: 0.5},
	}
	for _, tc := range cases {
		if got := ConfidenceValue(tc.text); got != tc.want {
			t.Errorf("ConfidenceValue(%q)=%v want %v", tc.text, got, tc.want)
		}
	}
}

func TestConfidenceBucketRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  float64
	}{
		{score: 0.99, want: 0.95},
		{score: 0.95, want: 0.95},
		{score: 0.9, want: 0.85},
		{score: 0.7, want: 0.7},
		{score: 0.3, want: 0.4},
	}
	for _, tc := range cases {
		if got := ConfidenceValue(confidenceBucket(tc.score)); got != tc.want {
			t.Errorf("score=%v got=%v want=%v", tc.score, got, tc.want)
		}
	}
}

func TestHeuristicMood(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{text: "I feel so lonely today", want: "sad"},
		{text: "I'm really worried about tomorrow", want: "anxious"},
		{text: "this makes me furious", want: "angry"},
		{text: "what a wonderful morning", want: "happy"},
		{text: "I'm so lost and unsure", want: "confused"},
		{text: "the sky is blue", want: "sad"},
		{text: "tell me about turtles", want: "neutral"},
	}
	for _, tc := range cases {
		if got := HeuristicMood(tc.text); got != tc.want {
			t.Errorf("HeuristicMood(%q)=%q want %q", tc.text, got, tc.want)
		}
	}
}

func TestFallbackMessage(t *testing.T) {
	t.Parallel()

	if got := FallbackMessage("sad"); !strings.Contains(got, "sadness") {
		t.Errorf("sad message=%q", got)
	}
	if got := FallbackMessage("SAD"); got != FallbackMessage("sad") {
		t.Errorf("mood lookup should be case-insensitive")
	}
	if got := FallbackMessage("bewildered"); got != genericFallbackMessage {
		t.Errorf("unknown mood message=%q", got)
	}
}

func TestNormalizeMood(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"joy":      "happy",
		"sadness":  "sad",
		"anger":    "upset",
		"fear":     "anxious",
		"surprise": "surprised",
		"disgust":  "disgusted",
		"neutral":  "calm",
		"Joy":      "happy",
		"wistful":  "wistful",
	}
	for label, want := range cases {
		if got := normalizeMood(label); got != want {
			t.Errorf("normalizeMood(%q)=%q want %q", label, got, want)
		}
	}
}

func TestCompose_SubstitutesFallbacks(t *testing.T) {
	t.Parallel()

	got := Compose("sad", "", "   ", MalformedContent())

	if got.Message != FallbackMessage("sad") {
		t.Errorf("message=%q", got.Message)
	}
	if got.Journal != fallbackJournalText {
		t.Errorf("journal=%q", got.Journal)
	}
	if !reflect.DeepEqual(got.Content, curator.PlaceholderBundle()) {
		t.Errorf("content=%+v", got.Content)
	}
}

func TestCompose_KeepsProvidedValues(t *testing.T) {
	t.Parallel()

	bundle := curator.ContentBundle{
		Video:             curator.MediaItem{Title: "v", URL: "u"},
		Music:             curator.MediaItem{Title: "m", URL: "u2"},
		News:              []curator.NewsItem{{Title: "n", URL: "u3"}},
		ContextKeyphrases: []string{"k"},
	}
	got := Compose("happy", "hello", "dear diary", ContentFromBundle(bundle))

	if got.Message != "hello" || got.Journal != "dear diary" {
		t.Errorf("message=%q journal=%q", got.Message, got.Journal)
	}
	if !reflect.DeepEqual(got.Content, bundle) {
		t.Errorf("content=%+v", got.Content)
	}
}

func TestNormalizeContent_BackfillsBundleFields(t *testing.T) {
	t.Parallel()

	partial := curator.ContentBundle{
		Video: curator.MediaItem{Title: "real", URL: "https://youtu.be/x"},
	}
	got := normalizeContent(ContentFromBundle(partial))

	if got.Video.Title != "real" {
		t.Errorf("video replaced: %+v", got.Video)
	}
	if got.Music != curator.PlaceholderMusic() {
		t.Errorf("music=%+v", got.Music)
	}
	if len(got.News) != 1 || got.News[0] != curator.PlaceholderNews() {
		t.Errorf("news=%+v", got.News)
	}
	if !reflect.DeepEqual(got.ContextKeyphrases, curator.PlaceholderKeyphrases()) {
		t.Errorf("keyphrases=%v", got.ContextKeyphrases)
	}
}

func TestNormalizeContent_PositionalList(t *testing.T) {
	t.Parallel()

	items := []curator.MediaItem{
		{Title: "vid", URL: "v"},
		{Title: "song", URL: "s"},
		{Title: "story", URL: "n", Description: "good things"},
	}
	got := normalizeContent(ContentFromItems(items))

	if got.Video.Title != "vid" || got.Music.Title != "song" {
		t.Errorf("video=%+v music=%+v", got.Video, got.Music)
	}
	if len(got.News) != 1 || got.News[0].Title != "story" || got.News[0].Snippet != "good things" {
		t.Errorf("news=%+v", got.News)
	}
	if !reflect.DeepEqual(got.ContextKeyphrases, curator.PlaceholderKeyphrases()) {
		t.Errorf("keyphrases=%v", got.ContextKeyphrases)
	}
}

func TestNormalizeContent_CapsNewsAndKeyphrases(t *testing.T) {
	t.Parallel()

	// An oversized positional list keeps at most three news items.
	items := make([]curator.MediaItem, 8)
	for i := range items {
		items[i] = curator.MediaItem{Title: "item", URL: "u"}
	}
	got := normalizeContent(ContentFromItems(items))
	if len(got.News) != 3 {
		t.Errorf("news len=%d", len(got.News))
	}

	// Same for a caller-supplied bundle exceeding the caps.
	bundle := curator.ContentBundle{
		Video: curator.MediaItem{Title: "v", URL: "u"},
		Music: curator.MediaItem{Title: "m", URL: "u"},
		News: []curator.NewsItem{
			{Title: "1", URL: "u1"}, {Title: "2", URL: "u2"},
			{Title: "3", URL: "u3"}, {Title: "4", URL: "u4"},
		},
		ContextKeyphrases: []string{"a", "b", "c", "d", "e"},
	}
	got = normalizeContent(ContentFromBundle(bundle))
	if len(got.News) != 3 || got.News[2].Title != "3" {
		t.Errorf("news=%+v", got.News)
	}
	if !reflect.DeepEqual(got.ContextKeyphrases, []string{"a", "b", "c"}) {
		t.Errorf("keyphrases=%v", got.ContextKeyphrases)
	}
}

func TestNormalizeContent_ShortList(t *testing.T) {
	t.Parallel()

	got := normalizeContent(ContentFromItems([]curator.MediaItem{{Title: "only", URL: "v"}}))

	if got.Video.Title != "only" {
		t.Errorf("video=%+v", got.Video)
	}
	if got.Music != curator.PlaceholderMusic() {
		t.Errorf("music=%+v", got.Music)
	}
}

type fakeClassifier struct {
	ranked []RankedLabel
	err    error
}

func (f *fakeClassifier) Classify(context.Context, string, []string) ([]RankedLabel, error) {
	return f.ranked, f.err
}

type fakeTextGen struct {
	text string
	err  error
}

func (f *fakeTextGen) GenerateText(context.Context, string, string) (string, error) {
	return f.text, f.err
}

type fakeCurator struct {
	bundle curator.ContentBundle
}

func (f *fakeCurator) Curate(context.Context, string, string) curator.ContentBundle {
	return f.bundle
}

func TestReflect(t *testing.T) {
	t.Parallel()

	r := NewReflectionGenerator(&fakeTextGen{text: "A quiet ripple passed between us."})

	if _, err := r.Reflect(context.Background(), nil); err == nil {
		t.Fatalf("expected error on empty event window")
	}

	events := []memory.Event{{UserInput: "I feel lonely", Mood: "sad"}}
	entry, err := r.Reflect(context.Background(), events)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	lines := strings.SplitN(entry, "\n", 2)
	if len(lines) != 2 || lines[1] != "A quiet ripple passed between us." {
		t.Fatalf("entry=%q", entry)
	}
	if !strings.Contains(lines[0], ":") {
		t.Fatalf("header missing time: %q", lines[0])
	}
}

func TestCondense(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 30)
	got := condense(long)
	if len(got) != 50 || !strings.HasSuffix(got, "...") {
		t.Fatalf("condense len=%d got=%q", len(got), got)
	}
	if got := condense("  a   b  "); got != "a b" {
		t.Fatalf("got=%q", got)
	}
}

func TestTimeSymbol(t *testing.T) {
	t.Parallel()

	cases := map[int]string{7: "🌄", 13: "☀️", 19: "🌆", 23: "🌙", 3: "🌙"}
	for hour, want := range cases {
		at := time.Date(2026, 1, 1, hour, 0, 0, 0, time.UTC)
		if got := timeSymbol(at); got != want {
			t.Errorf("hour=%d got=%q want=%q", hour, got, want)
		}
	}
}

func newTestOrchestrator(t *testing.T, classifier MoodClassifier, gen TextGenerator, cur ContentCurator) *Orchestrator {
	t.Helper()
	dir := t.TempDir()
	events := memory.NewEventLog(dir+"/user_states.json", nil)
	primary := journal.NewStore(dir+"/journal_entries.json", nil)
	secondary := journal.NewStore(dir+"/journal_history.json", nil)
	return New(classifier, gen, cur, events, primary, secondary, nil, nil)
}

func TestProcess_AllStagesDegrade(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t,
		&fakeClassifier{err: errors.New("model down")},
		&fakeTextGen{err: errors.New("model down")},
		&fakeCurator{bundle: curator.PlaceholderBundle()},
	)

	resp := o.Process(context.Background(), "I feel so lonely today")

	if resp.Mood != "sad" {
		t.Errorf("mood=%q", resp.Mood)
	}
	if resp.Confidence != 0.4 {
		t.Errorf("confidence=%v", resp.Confidence)
	}
	if resp.Response != FallbackMessage("sad") {
		t.Errorf("response=%q", resp.Response)
	}
	if !reflect.DeepEqual(resp.Content, curator.PlaceholderBundle()) {
		t.Errorf("content=%+v", resp.Content)
	}
	if !strings.HasPrefix(resp.Journal, "Journal Entry - ") {
		t.Errorf("journal=%q", resp.Journal)
	}

	// The entry must land in both stores with the same id after sync.
	if o.primary.Len() != 1 || o.secondary.Len() != 1 {
		t.Fatalf("store lens: primary=%d secondary=%d", o.primary.Len(), o.secondary.Len())
	}
	if o.primary.Entries()[0].ID != o.secondary.Entries()[0].ID {
		t.Errorf("stores diverged after sync")
	}
	if len(resp.JournalEntries) != 1 {
		t.Errorf("journal entries=%d", len(resp.JournalEntries))
	}
}

func TestProcess_SuccessfulStages(t *testing.T) {
	t.Parallel()

	bundle := curator.ContentBundle{
		Video:             curator.MediaItem{Title: "Morning Walks", URL: "https://youtu.be/abc"},
		Music:             curator.MediaItem{Title: "Sunrise", URL: "https://open.spotify.com/track/x"},
		News:              []curator.NewsItem{{Title: "Neighbors plant a garden", URL: "https://example.org/n"}},
		ContextKeyphrases: []string{"morning", "walks"},
	}
	o := newTestOrchestrator(t,
		&fakeClassifier{ranked: []RankedLabel{{Label: "joy", Score: 0.97}, {Label: "neutral", Score: 0.02}}},
		&fakeTextGen{text: "That sounds like a lovely start to the day."},
		&fakeCurator{bundle: bundle},
	)

	resp := o.Process(context.Background(), "I had a great morning walk")

	if resp.Mood != "happy" {
		t.Errorf("mood=%q", resp.Mood)
	}
	if resp.Confidence != 0.95 {
		t.Errorf("confidence=%v", resp.Confidence)
	}
	if resp.Response != "That sounds like a lovely start to the day." {
		t.Errorf("response=%q", resp.Response)
	}
	if !reflect.DeepEqual(resp.Content, bundle) {
		t.Errorf("content=%+v", resp.Content)
	}
	if resp.Journal == "" || strings.HasPrefix(resp.Journal, "Journal Entry - ") {
		t.Errorf("expected generated reflection, got %q", resp.Journal)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp=%q: %v", resp.Timestamp, err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t,
		&fakeClassifier{ranked: []RankedLabel{{Label: "joy", Score: 0.9}}},
		&fakeTextGen{text: "hi"},
		&fakeCurator{bundle: curator.PlaceholderBundle()},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := o.Process(ctx, "hello")

	if resp.Response != fallbackApology {
		t.Errorf("response=%q", resp.Response)
	}
	if resp.Mood != "reflective" || resp.Confidence != 0 {
		t.Errorf("mood=%q confidence=%v", resp.Mood, resp.Confidence)
	}
	if !reflect.DeepEqual(resp.Content, curator.PlaceholderBundle()) {
		t.Errorf("content=%+v", resp.Content)
	}
	if o.primary.Len() != 1 || o.secondary.Len() != 1 {
		t.Fatalf("fallback entry must reach both stores: primary=%d secondary=%d",
			o.primary.Len(), o.secondary.Len())
	}
}

func TestLooksFactual(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"What is the capital of France": true,
		"tell me about whales":          true,
		"Explain photosynthesis":        true,
		"I feel sad today":              false,
		"":                              false,
	}
	for text, want := range cases {
		if got := looksFactual(text); got != want {
			t.Errorf("looksFactual(%q)=%v want %v", text, got, want)
		}
	}
}
