package triage

import (
	"strings"

	"github.com/civicpulse/issues-api/internal/models"
)

// LocationNotSpecified is the sentinel used when the analyzer finds no
// confident location mention.
const LocationNotSpecified = "Location not specified"

const locationScoreThreshold = 0.7

// ExtractLocation filters the analyzer's entities down to confident
// LOCATION mentions and joins them in their original order.
func ExtractLocation(entities []models.Entity) string {
	var locations []string
	for _, entity := range entities {
		if entity.Type == "LOCATION" && entity.Score > locationScoreThreshold {
			locations = append(locations, entity.Text)
		}
	}
	if len(locations) == 0 {
		return LocationNotSpecified
	}
	return strings.Join(locations, ", ")
}
