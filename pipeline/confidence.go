package pipeline

import "strings"

// ConfidenceValue maps a qualitative confidence bucket to the fixed numeric
// scale. Unrecognized text maps to 0.5; the mapping is total.
func ConfidenceValue(text string) float64 {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "extremely confident":
		return 0.95
	case "very confident":
		return 0.85
	case "moderately confident":
		return 0.7
	case "not very confident":
		return 0.4
	default:
		return 0.5
	}
}

// confidenceBucket converts a raw classifier score into its qualitative
// bucket.
func confidenceBucket(score float64) string {
	switch {
	case score >= 0.95:
		return "extremely confident"
	case score >= 0.8:
		return "very confident"
	case score >= 0.65:
		return "moderately confident"
	default:
		return "not very confident"
	}
}
