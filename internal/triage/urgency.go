package triage

import (
	"strings"

	"github.com/civicpulse/issues-api/internal/models"
)

// Urgency weighting: sentiment contributes up to 0.3, scaled by the
// NEGATIVE confidence; safety keywords contribute a flat 0.4 and
// severity keywords a flat 0.3, each counted once regardless of how
// many keywords appear.
const (
	sentimentWeight = 0.3
	safetyWeight    = 0.4
	severityWeight  = 0.3

	highThreshold   = 0.6
	mediumThreshold = 0.3
)

var safetyKeywords = []string{"danger", "unsafe", "hazard", "emergency", "urgent", "serious", "major"}

var severityKeywords = []string{"large", "huge", "massive", "severe", "critical", "broken", "damaged"}

// ScoreUrgency computes a coarse 3-level priority from the detected
// sentiment, the raw transcript and the sentiment confidence
// distribution.
func ScoreUrgency(sentiment, text string, scores models.ScoreMap) string {
	total := 0.0

	if sentiment == models.SentimentNegative {
		total += sentimentWeight * scores["Negative"]
	}

	lower := strings.ToLower(text)
	if containsAny(lower, safetyKeywords) {
		total += safetyWeight
	}
	if containsAny(lower, severityKeywords) {
		total += severityWeight
	}

	switch {
	case total >= highThreshold:
		return models.UrgencyHigh
	case total >= mediumThreshold:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
