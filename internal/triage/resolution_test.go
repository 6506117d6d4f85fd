package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civicpulse/issues-api/internal/models"
)

func TestEstimateResolution(t *testing.T) {
	cases := []struct {
		name      string
		issueType string
		urgency   string
		want      int
	}{
		{"snow high", "Snow Removal", models.UrgencyHigh, 1},
		{"park low", "Park Maintenance", models.UrgencyLow, 15},
		{"pothole medium", "Infrastructure - Pothole", models.UrgencyMedium, 7},
		{"garbage low rounds down", "Garbage Collection", models.UrgencyLow, 1},
		{"safety high rounds down", "Public Safety", models.UrgencyHigh, 0},
		{"unknown type", "Alien Invasion", models.UrgencyMedium, 7},
		{"unknown urgency", "Streetlight", "frantic", 5},
		{"unknown both", "Alien Invasion", "frantic", 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateResolution(tc.issueType, tc.urgency))
		})
	}
}
