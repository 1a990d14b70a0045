// Package summary renders gap lists into the recommendation markup consumed by
// presentation layers: bold spans, line breaks and one colour/icon token per severity tier.
package summary

import (
	"strings"

	"github.com/jonathan/health-check/internal/types"
)

// Congratulations is returned when there is nothing to improve.
const Congratulations = "Your overall health looks excellent! There is nothing in particular to worry about. Keep up the balance."

const topicsHeader = "Topics to review"

const opening = "Based on your answers, a few areas could use a little more attention." + lineBreak + lineBreak

// Synthesize groups gaps by category and emits each distinct advice string once per
// category, coloured by the severity of its first occurrence. Gaps are expected in
// descending severity order, as returned by classify.Partition.
func Synthesize(gaps []types.ScoredItem) string {
	if len(gaps) == 0 {
		return Congratulations
	}

	byCategory := make(map[types.Category][]types.ScoredItem)
	var order []types.Category
	for _, g := range gaps {
		if _, ok := byCategory[g.Category]; !ok {
			order = append(order, g.Category)
		}
		byCategory[g.Category] = append(byCategory[g.Category], g)
	}

	var sb strings.Builder
	sb.WriteString(opening)
	sections := 0

	for _, c := range sortedCategories(order) {
		var lines strings.Builder
		seen := make(map[string]bool)
		for _, g := range byCategory[c] {
			if g.Advice == "" || seen[g.Advice] {
				continue
			}
			seen[g.Advice] = true
			lines.WriteString(adviceLine(TierFor(g.Severity), g.Advice))
		}
		if lines.Len() == 0 {
			continue
		}
		sb.WriteString(bold(header(c) + ":"))
		sb.WriteString(lineBreak)
		sb.WriteString(lines.String())
		sb.WriteString(lineBreak)
		sections++
	}

	if sections == 0 {
		sb.WriteString(topicsSection(gaps))
	}

	return strings.TrimSuffix(sb.String(), lineBreak)
}

// topicsSection names the gap topics when no gap carries advice text.
func topicsSection(gaps []types.ScoredItem) string {
	var sb strings.Builder
	sb.WriteString(bold(topicsHeader + ":"))
	sb.WriteString(lineBreak)
	seen := make(map[string]bool)
	for _, g := range gaps {
		topic := g.Topic
		if topic == "" {
			topic = header(g.Category)
		}
		if seen[topic] {
			continue
		}
		seen[topic] = true
		sb.WriteString(adviceLine(TierFor(g.Severity), topic))
	}
	return sb.String()
}

// sortedCategories puts known categories in reporting order, then unknown ones as encountered.
func sortedCategories(present []types.Category) []types.Category {
	has := make(map[types.Category]bool, len(present))
	for _, c := range present {
		has[c] = true
	}

	out := make([]types.Category, 0, len(present))
	for _, c := range types.AllCategories {
		if has[c] {
			out = append(out, c)
			delete(has, c)
		}
	}
	for _, c := range present {
		if has[c] {
			out = append(out, c)
		}
	}
	return out
}
