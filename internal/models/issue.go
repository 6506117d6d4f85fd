package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Urgency levels derived by the triage scorer.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// StatusPending is the workflow state assigned at intake. Later states
// are caller-driven; no transition graph is enforced.
const StatusPending = "Pending"

// Sentiment labels produced by the text analyzer.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
	SentimentMixed    = "MIXED"
)

// Entity is an NLP-extracted span with a type and confidence score.
type Entity struct {
	Type  string  `json:"Type"`
	Text  string  `json:"Text"`
	Score float64 `json:"Score"`
}

// EntityList stores entities as a JSONB column.
type EntityList []Entity

// Value implements driver.Valuer.
func (e EntityList) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner.
func (e *EntityList) Scan(src interface{}) error {
	return scanJSON(src, e)
}

// ScoreMap stores the sentiment confidence distribution as a JSONB column.
type ScoreMap map[string]float64

// Value implements driver.Valuer.
func (s ScoreMap) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *ScoreMap) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// Issue is one persisted citizen report with derived classification,
// urgency and location. Field names on the wire match the record shape
// the reporting frontend consumes.
type Issue struct {
	IssueID         string     `db:"id" json:"IssueID"`
	UserID          string     `db:"user_id" json:"UserID"`
	Transcript      string     `db:"transcript" json:"Transcript"`
	IssueType       string     `db:"issue_type" json:"IssueType"`
	Location        string     `db:"location" json:"Location"`
	Sentiment       string     `db:"sentiment" json:"Sentiment"`
	SentimentScores ScoreMap   `db:"sentiment_scores" json:"SentimentScores"`
	Urgency         string     `db:"urgency" json:"Urgency"`
	Status          string     `db:"status" json:"Status"`
	Timestamp       string     `db:"timestamp" json:"Timestamp"`
	UpdatedAt       string     `db:"updated_at" json:"UpdatedAt,omitempty"`
	Reports         int        `db:"reports" json:"Reports"`
	Entities        EntityList `db:"entities" json:"Entities"`
	Notes           string     `db:"notes" json:"Notes,omitempty"`
	AssignedTo      string     `db:"assigned_to" json:"AssignedTo,omitempty"`
	ResolutionDate  string     `db:"resolution_date" json:"ResolutionDate,omitempty"`
}

// IssueFilter narrows issue listings. Status and Urgency match exactly,
// IssueType matches as a substring; supplied filters are ANDed.
type IssueFilter struct {
	Status    string
	Urgency   string
	IssueType string
	Limit     int
}

// UpdatableField pairs a wire-level field name with its column.
type UpdatableField struct {
	Name   string
	Column string
}

// UpdatableFields is the ordered allow-list of fields that may change
// after intake. Everything else is write-once.
var UpdatableFields = []UpdatableField{
	{Name: "Status", Column: "status"},
	{Name: "Notes", Column: "notes"},
	{Name: "AssignedTo", Column: "assigned_to"},
	{Name: "ResolutionDate", Column: "resolution_date"},
}

// Receipt is returned to the reporter after a successful intake.
type Receipt struct {
	IssueID             string `json:"issueId"`
	IssueType           string `json:"issueType"`
	Location            string `json:"location"`
	Urgency             string `json:"urgency"`
	Status              string `json:"status"`
	EstimatedResolution string `json:"estimatedResolution"`
}
