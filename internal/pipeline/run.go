package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/types"
)

// Step names reported through ProgressEvent
const (
	StepScore   = "score"
	StepPersist = "persist"
)

// ProgressEvent represents a progress update during an assessment run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for an assessment run
type RunOptions struct {
	Catalog       *catalog.Catalog
	Request       *types.AssessmentRequest
	Scoring       scoring.Options
	Persister     persistence.Persister // Optional: nil skips persistence
	RespondentKey []byte
	OnProgress    ProgressCallback
}

// RunResult is the output of an assessment run
type RunResult struct {
	ID      string                  `json:"id,omitempty"`
	Result  *types.AssessmentResult `json:"result"`
	Outcome *persistence.Outcome    `json:"persistence,omitempty"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// RunAssessment validates the request, evaluates it and, when asked to, persists the
// result. Persistence failure is reported in the outcome and never fails the run.
func RunAssessment(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if opts.Request == nil {
		return nil, fmt.Errorf("request is required")
	}
	if err := opts.Request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if err := CheckAnswers(opts.Catalog, opts.Request.Answers); err != nil {
		return nil, err
	}

	req := opts.Request
	result := Evaluate(opts.Catalog, req.Answers, req.Measurements, opts.Scoring)
	emitProgress(&opts, StepScore,
		fmt.Sprintf("Scored %d items: %d strengths, %d gaps", len(result.Strengths)+len(result.Gaps), len(result.Strengths), len(result.Gaps)),
		result)

	out := &RunResult{Result: result}
	if !req.Persist || opts.Persister == nil {
		return out, nil
	}

	rec := persistence.NewRecord(opts.Catalog.Name(), persistence.HashRespondent(opts.RespondentKey, req.Respondent),
		req.Answers, req.Measurements, result)
	outcome := opts.Persister.Persist(ctx, rec)
	emitProgress(&opts, StepPersist, outcome.Message, outcome)

	out.Outcome = &outcome
	if outcome.Success {
		out.ID = rec.ID.String()
	}
	return out, nil
}
