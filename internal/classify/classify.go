// Package classify splits scored items into strengths and gaps.
package classify

import (
	"sort"

	"github.com/jonathan/health-check/internal/types"
)

// GapThreshold is the highest score still treated as a gap.
const GapThreshold = 1

// IsGap reports whether a score falls at or below the improvement threshold.
func IsGap(score int) bool {
	return score <= GapThreshold
}

// Partition splits items into strengths (catalog order) and gaps (descending
// severity, ties keep catalog order). Every item lands in exactly one list.
func Partition(items []types.ScoredItem) (strengths, gaps []types.ScoredItem) {
	strengths = make([]types.ScoredItem, 0, len(items))
	gaps = make([]types.ScoredItem, 0, len(items))

	for _, item := range items {
		if IsGap(item.Score) {
			gaps = append(gaps, item)
		} else {
			strengths = append(strengths, item)
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Severity > gaps[j].Severity
	})

	return strengths, gaps
}
