package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civicpulse/issues-api/internal/models"
)

func TestExtractLocation(t *testing.T) {
	entities := []models.Entity{
		{Type: "LOCATION", Text: "Main St", Score: 0.8},
		{Type: "LOCATION", Text: "Elm St", Score: 0.5},
	}
	assert.Equal(t, "Main St", ExtractLocation(entities))
}

func TestExtractLocationJoinsInOrder(t *testing.T) {
	entities := []models.Entity{
		{Type: "LOCATION", Text: "Princess Street", Score: 0.95},
		{Type: "PERSON", Text: "John", Score: 0.99},
		{Type: "LOCATION", Text: "Kingston", Score: 0.88},
	}
	assert.Equal(t, "Princess Street, Kingston", ExtractLocation(entities))
}

func TestExtractLocationThresholdIsExclusive(t *testing.T) {
	entities := []models.Entity{{Type: "LOCATION", Text: "Oak Ave", Score: 0.7}}
	assert.Equal(t, LocationNotSpecified, ExtractLocation(entities))
}

func TestExtractLocationEmpty(t *testing.T) {
	assert.Equal(t, LocationNotSpecified, ExtractLocation(nil))
	assert.Equal(t, LocationNotSpecified, ExtractLocation([]models.Entity{}))
}
