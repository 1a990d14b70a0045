package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/health-check/internal/db"
)

// AssessmentStore is the slice of the database layer the Postgres sink needs
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, a *db.Assessment) error
}

// PostgresSink stores records in the assessments table
type PostgresSink struct {
	store AssessmentStore
}

// NewPostgresSink wraps a database handle.
func NewPostgresSink(store AssessmentStore) *PostgresSink {
	return &PostgresSink{store: store}
}

// Name implements Sink.
func (s *PostgresSink) Name() string { return "PostgreSQL" }

// Append implements Sink.
func (s *PostgresSink) Append(ctx context.Context, rec *Record) error {
	a, err := toAssessment(rec)
	if err != nil {
		return err
	}
	return s.store.SaveAssessment(ctx, a)
}

func toAssessment(rec *Record) (*db.Assessment, error) {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	a := &db.Assessment{
		ID:             rec.ID,
		Catalog:        rec.Catalog,
		RespondentHash: rec.RespondentHash,
		Answers:        answers,
		Result:         result,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.Measurements != nil {
		m, err := json.Marshal(rec.Measurements)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal measurements: %w", err)
		}
		a.Measurements = m
	}
	if rec.Result != nil {
		a.GapCount = len(rec.Result.Gaps)
		if rec.Result.Summary != "" {
			a.Summary = rec.Result.Summary
		}
	}
	return a, nil
}
