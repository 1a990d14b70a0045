// Package persistence stores completed assessments in a remote sink, falling back to a
// local SQLite file when the remote sink cannot be reached.
package persistence

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/health-check/internal/types"
)

// Record is one completed assessment as handed to a sink
type Record struct {
	ID             uuid.UUID               `json:"id"`
	CreatedAt      time.Time               `json:"created_at"`
	Catalog        string                  `json:"catalog"`
	RespondentHash string                  `json:"respondent_hash,omitempty"`
	Answers        types.Answers           `json:"answers"`
	Measurements   *types.Measurements     `json:"measurements,omitempty"`
	Result         *types.AssessmentResult `json:"result"`
}

// NewRecord stamps a fresh ID and creation time on an assessment.
func NewRecord(catalogName, respondentHash string, answers types.Answers, bio *types.Measurements, result *types.AssessmentResult) *Record {
	return &Record{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		Catalog:        catalogName,
		RespondentHash: respondentHash,
		Answers:        answers,
		Measurements:   bio,
		Result:         result,
	}
}

// Header is the column layout produced by Row.
var Header = []string{
	"id", "created_at", "catalog", "respondent_hash",
	"physical_pct", "mental_pct", "social_pct", "intellectual_pct",
	"strengths", "gaps", "gap_topics", "answers",
}

// Row flattens a record into one spreadsheet-style row matching Header.
func Row(rec *Record) ([]any, error) {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	row := []any{
		rec.ID.String(),
		rec.CreatedAt.Format(time.RFC3339),
		rec.Catalog,
		rec.RespondentHash,
	}

	var strengths, gaps int
	var topics []string
	pct := map[types.Category]float64{}
	if rec.Result != nil {
		pct = rec.Result.Percentages
		strengths = len(rec.Result.Strengths)
		gaps = len(rec.Result.Gaps)
		for _, g := range rec.Result.Gaps {
			topics = append(topics, g.Topic)
		}
	}
	for _, c := range types.AllCategories {
		if v, ok := pct[c]; ok {
			row = append(row, fmt.Sprintf("%.1f", v))
		} else {
			row = append(row, "")
		}
	}

	return append(row, strengths, gaps, strings.Join(topics, "; "), string(answers)), nil
}
