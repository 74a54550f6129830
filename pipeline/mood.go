package pipeline

import "strings"

// candidateLabels is the raw emotion label set handed to the classifier.
var candidateLabels = []string{"joy", "sadness", "anger", "fear", "surprise", "disgust", "neutral"}

// labelMoods normalizes raw classifier labels to the mood vocabulary used
// across the pipeline.
var labelMoods = map[string]string{
	"joy":      "happy",
	"sadness":  "sad",
	"anger":    "upset",
	"fear":     "anxious",
	"surprise": "surprised",
	"disgust":  "disgusted",
	"neutral":  "calm",
}

func normalizeMood(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if mood, ok := labelMoods[label]; ok {
		return mood
	}
	return label
}

// moodKeywords drives the heuristic classifier used when the model-backed
// classifier is unreachable. First match wins.
var moodKeywords = []struct {
	mood  string
	words []string
}{
	{mood: "sad", words: []string{"lonely", "alone", "sad", "down", "blue", "miserable", "depressed"}},
	{mood: "anxious", words: []string{"anxious", "worried", "nervous", "afraid", "scared", "overwhelmed"}},
	{mood: "angry", words: []string{"angry", "furious", "mad", "frustrated", "annoyed"}},
	{mood: "happy", words: []string{"happy", "joy", "excited", "great", "wonderful", "grateful"}},
	{mood: "confused", words: []string{"confused", "lost", "unsure", "uncertain"}},
}

// HeuristicMood detects a mood from keyword matches, defaulting to neutral.
func HeuristicMood(text string) string {
	lower := strings.ToLower(text)
	for _, mk := range moodKeywords {
		for _, w := range mk.words {
			if strings.Contains(lower, w) {
				return mk.mood
			}
		}
	}
	return "neutral"
}

// fallbackMessages are the mood-keyed canonical support messages used when
// message generation fails.
var fallbackMessages = map[string]string{
	"happy":    "It's wonderful to see you in good spirits! How can I enhance this positive energy today?",
	"sad":      "I sense some sadness. Remember that all emotions are valid, and I'm here to support you.",
	"anxious":  "I notice you might be feeling anxious. Let's take a breath together and find some calm.",
	"confused": "When things seem unclear, sometimes a gentle pause helps us find clarity. I'm here to help.",
	"angry":    "I understand you might be feeling frustrated. Your feelings are valid, and I'm here to listen.",
	"neutral":  "How are you feeling today? I'm here to support you however you need.",
}

const genericFallbackMessage = "I'm here to support you today. How can I help?"

// FallbackMessage returns the canonical support message for a mood.
func FallbackMessage(mood string) string {
	if msg, ok := fallbackMessages[strings.ToLower(mood)]; ok {
		return msg
	}
	return genericFallbackMessage
}

// factualStarts marks queries that want information rather than comfort; the
// support prompt shifts register accordingly.
var factualStarts = []string{
	"what is", "who is", "when is", "where is", "why is", "how is",
	"tell me about", "explain", "define", "give me information on",
}

func looksFactual(text string) bool {
	lower := strings.TrimSpace(strings.ToLower(text))
	for _, prefix := range factualStarts {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
