// Package pipeline provides the high-level orchestration for scoring a questionnaire:
// the pure engine facade and the assessment run that hands results to persistence.
package pipeline

import (
	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/classify"
	"github.com/jonathan/health-check/internal/profile"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/summary"
	"github.com/jonathan/health-check/internal/types"
)

// Evaluate scores a two-axis catalog, partitions the items and synthesizes the summary.
// It is pure: the same inputs always give the same result.
func Evaluate(cat *catalog.Catalog, answers types.Answers, bio *types.Measurements, opts scoring.Options) *types.AssessmentResult {
	comp := scoring.Compute(cat, answers, bio, opts)
	strengths, gaps := classify.Partition(comp.Items)

	return &types.AssessmentResult{
		Tallies:     comp.Tallies,
		Percentages: scoring.Percentages(comp.Tallies),
		Strengths:   strengths,
		Gaps:        gaps,
		Summary:     summary.Synthesize(gaps),
	}
}

// EvaluateProfile computes the four-axis vector and matches it against the profile table.
func EvaluateProfile(cat *catalog.Catalog, answers types.Answers, table profile.Table) *types.ProfileResult {
	vec := scoring.ComputeDimensions(cat, answers)
	return &types.ProfileResult{
		Dimensions: vec,
		Profile:    profile.Match(vec, table),
	}
}
