package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Assessment represents a stored assessment record
type Assessment struct {
	ID             uuid.UUID       `json:"id"`
	Catalog        string          `json:"catalog"`
	RespondentHash string          `json:"respondent_hash,omitempty"`
	Answers        json.RawMessage `json:"answers"`
	Measurements   json.RawMessage `json:"measurements,omitempty"`
	Result         json.RawMessage `json:"result"`
	Summary        string          `json:"summary"`
	GapCount       int             `json:"gap_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AssessmentFilters narrows ListAssessments
type AssessmentFilters struct {
	RespondentHash string
	Limit          int
}
