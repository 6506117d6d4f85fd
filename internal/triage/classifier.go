// Package triage derives classification, urgency, location and
// resolution estimates from a raw complaint transcript and its NLP
// analysis. All functions are pure and deterministic; the rule tables
// stand in for a model trained on historical reports.
package triage

import "strings"

// FallbackIssueType is returned when no classification rule matches.
const FallbackIssueType = "General Issue"

type rule struct {
	issueType string
	keywords  []string
}

// Rules are evaluated in declaration order and the first keyword hit
// wins. Matching is plain substring matching, not tokenized, so a
// keyword can match inside a larger word ("park" matches "parking").
// That imprecision is a known limitation carried on purpose: changing
// the matching semantics would silently reclassify existing traffic.
var classificationRules = []rule{
	{"Infrastructure - Pothole", []string{"pothole", "road damage", "pavement", "crack", "hole in road"}},
	{"Snow Removal", []string{"snow", "ice", "winter", "plow", "sidewalk clearing"}},
	{"Streetlight", []string{"streetlight", "light out", "lamp", "lighting", "dark street"}},
	{"Park Maintenance", []string{"park", "playground", "bench", "grass", "trail"}},
	{"Traffic Signal", []string{"traffic light", "signal", "intersection", "crossing"}},
	{"Garbage Collection", []string{"garbage", "trash", "waste", "recycling", "collection"}},
	{"Water/Sewer", []string{"water", "sewer", "drain", "flooding", "leak"}},
	{"Public Safety", []string{"safety", "danger", "hazard", "emergency"}},
}

// ClassifyIssue maps free text to an issue-type label. Every input
// yields exactly one label; unmatched text falls back to
// FallbackIssueType.
func ClassifyIssue(text string) string {
	lower := strings.ToLower(text)
	for _, r := range classificationRules {
		for _, keyword := range r.keywords {
			if strings.Contains(lower, keyword) {
				return r.issueType
			}
		}
	}
	return FallbackIssueType
}
