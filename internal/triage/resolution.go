package triage

import "github.com/civicpulse/issues-api/internal/models"

// Base resolution time in days per issue type, drawn from historical
// averages. Unknown types fall back to a week.
var baseResolutionDays = map[string]int{
	"Infrastructure - Pothole": 7,
	"Snow Removal":             2,
	"Streetlight":              5,
	"Park Maintenance":         10,
	"Traffic Signal":           3,
	"Garbage Collection":       1,
	"Water/Sewer":              4,
	"Public Safety":            1,
	"General Issue":            7,
}

const fallbackBaseDays = 7

var urgencyMultipliers = map[string]float64{
	models.UrgencyHigh:   0.5,
	models.UrgencyMedium: 1.0,
	models.UrgencyLow:    1.5,
}

// EstimateResolution maps an issue type and urgency to an estimated
// resolution duration in whole days, truncating toward zero.
func EstimateResolution(issueType, urgency string) int {
	base, ok := baseResolutionDays[issueType]
	if !ok {
		base = fallbackBaseDays
	}

	multiplier, ok := urgencyMultipliers[urgency]
	if !ok {
		multiplier = 1.0
	}

	return int(float64(base) * multiplier)
}
