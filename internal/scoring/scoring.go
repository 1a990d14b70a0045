// Package scoring aggregates answered choices against a catalog into category
// tallies, scored items and four-axis dimension vectors.
package scoring

import (
	"github.com/jonathan/health-check/internal/biometrics"
	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/types"
)

// Options controls policy choices that differ between questionnaire variants.
type Options struct {
	// CountUnansweredInMax adds the max score of unanswered questions to their
	// category's denominator, so skipping a question lowers the percentage.
	CountUnansweredInMax bool
}

// Computation is the raw output of a two-axis scoring pass.
type Computation struct {
	Tallies map[types.Category]types.CategoryTally
	Items   []types.ScoredItem
}

// Compute scores every answered question in catalog order. When bio carries both
// weight and height the biometric evaluation is folded into the Physical tally as
// an extra item; partial measurements are ignored.
func Compute(cat *catalog.Catalog, answers types.Answers, bio *types.Measurements, opts Options) Computation {
	tallies := make(map[types.Category]types.CategoryTally)
	for _, c := range cat.Categories() {
		tallies[c] = types.CategoryTally{}
	}

	items := make([]types.ScoredItem, 0, len(answers)+1)
	for i := 0; i < cat.Len(); i++ {
		q := cat.At(i)
		choice, ok := selectedChoice(&q, answers)
		if !ok {
			if opts.CountUnansweredInMax {
				t := tallies[q.Category]
				t.Max += q.MaxScore()
				tallies[q.Category] = t
			}
			continue
		}

		t := tallies[q.Category]
		t.Score += choice.Score
		t.Max += q.MaxScore()
		tallies[q.Category] = t

		items = append(items, types.ScoredItem{
			QuestionID: q.ID,
			Topic:      q.ShortTopic,
			Category:   q.Category,
			Score:      choice.Score,
			Severity:   q.Severity,
			Advice:     q.ResolveAdvice(choice.Score),
		})
	}

	if bio != nil && biometrics.Complete(*bio) {
		r := biometrics.Evaluate(*bio)
		t := tallies[types.CategoryPhysical]
		t.Score += r.Score
		t.Max += r.Max
		tallies[types.CategoryPhysical] = t

		items = append(items, types.ScoredItem{
			Topic:    biometrics.Topic,
			Category: types.CategoryPhysical,
			Score:    r.Score,
			Severity: r.Severity,
			Advice:   r.Label,
		})
	}

	return Computation{Tallies: tallies, Items: items}
}

// ComputeDimensions sums the per-dimension contributions of every selected choice.
// The vector is raw: profile predicates are calibrated to the catalog's authored weights.
func ComputeDimensions(cat *catalog.Catalog, answers types.Answers) types.DimensionVector {
	var vec types.DimensionVector
	for i := 0; i < cat.Len(); i++ {
		q := cat.At(i)
		choice, ok := selectedChoice(&q, answers)
		if !ok {
			continue
		}
		for dim, value := range choice.Dimensions {
			vec.Add(dim, value)
		}
	}
	return vec
}

// Percent returns the tally as a percentage of its max. A zero max is treated as 1.
func Percent(t types.CategoryTally) float64 {
	denominator := t.Max
	if denominator == 0 {
		denominator = 1
	}
	return float64(t.Score) / float64(denominator) * 100
}

// Percentages applies Percent to every tally.
func Percentages(tallies map[types.Category]types.CategoryTally) map[types.Category]float64 {
	out := make(map[types.Category]float64, len(tallies))
	for c, t := range tallies {
		out[c] = Percent(t)
	}
	return out
}

// selectedChoice resolves an answer. Missing entries and out-of-range indexes count as unanswered.
func selectedChoice(q *types.Question, answers types.Answers) (types.Choice, bool) {
	idx, ok := answers[q.ID]
	if !ok || idx < 0 || idx >= len(q.Choices) {
		return types.Choice{}, false
	}
	return q.Choices[idx], true
}
