// Package types provides type definitions for structured data used throughout the health-check system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category is a named axis of health being measured.
type Category string

const (
	CategoryPhysical     Category = "Physical"
	CategoryMental       Category = "Mental"
	CategorySocial       Category = "Social"
	CategoryIntellectual Category = "Intellectual"
)

// AllCategories lists every category in reporting order.
var AllCategories = []Category{CategoryPhysical, CategoryMental, CategorySocial, CategoryIntellectual}

// Dimension keys used by four-axis choice vectors (P/M/S/I tags).
type Dimension string

const (
	DimensionPhysical     Dimension = "P"
	DimensionMental       Dimension = "M"
	DimensionSocial       Dimension = "S"
	DimensionIntellectual Dimension = "I"
)

// Category returns the category a dimension tag stands for.
func (d Dimension) Category() Category {
	switch d {
	case DimensionPhysical:
		return CategoryPhysical
	case DimensionMental:
		return CategoryMental
	case DimensionSocial:
		return CategorySocial
	case DimensionIntellectual:
		return CategoryIntellectual
	default:
		return ""
	}
}

// Question represents a single catalog item with its choices and advice table
type Question struct {
	ID         string       `json:"id" validate:"required"`
	Category   Category     `json:"category" validate:"required,oneof=Physical Mental Social Intellectual"`
	Text       string       `json:"text" validate:"required"`
	Choices    []Choice     `json:"choices" validate:"required,min=1,dive"`
	Advice     []AdviceRule `json:"advice" validate:"dive"`
	ShortTopic string       `json:"short_topic" validate:"required"`
	Severity   int          `json:"severity" validate:"min=1"`
	Icon       string       `json:"icon,omitempty"`
}

// Choice represents one selectable answer.
// Two-axis catalogs use Score; four-axis catalogs use Dimensions.
type Choice struct {
	Text       string            `json:"text" validate:"required"`
	Score      int               `json:"score"`
	Dimensions map[Dimension]int `json:"dimensions,omitempty"`
}

// AdviceRule maps a closed score range to advice text.
type AdviceRule struct {
	Min  int    `json:"min"`
	Max  int    `json:"max" validate:"gtefield=Min"`
	Text string `json:"text"`
}

// Matches reports whether score falls inside the rule's closed range.
func (r AdviceRule) Matches(score int) bool {
	return score >= r.Min && score <= r.Max
}

// MaxScore returns the highest choice score, or 1 when that would be zero.
func (q *Question) MaxScore() int {
	maxScore := 0
	for i, c := range q.Choices {
		if i == 0 || c.Score > maxScore {
			maxScore = c.Score
		}
	}
	if maxScore == 0 {
		return 1
	}
	return maxScore
}

// ResolveAdvice scans the advice rules in authored order and returns the first match.
func (q *Question) ResolveAdvice(score int) string {
	for _, rule := range q.Advice {
		if rule.Matches(score) {
			return rule.Text
		}
	}
	return ""
}

// Answers maps a question ID to the zero-based index of the selected choice.
type Answers map[string]int
