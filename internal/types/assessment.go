// Package types provides type definitions for structured data used throughout the health-check system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CategoryTally accumulates the running score and maximum possible score of one category
type CategoryTally struct {
	Score int `json:"score"`
	Max   int `json:"max"`
}

// ScoredItem is the scored outcome of one answered question or biometric evaluation
type ScoredItem struct {
	QuestionID string   `json:"question_id,omitempty"`
	Topic      string   `json:"topic"`
	Category   Category `json:"category"`
	Score      int      `json:"score"`
	Severity   int      `json:"severity"`
	Advice     string   `json:"advice"`
}

// Measurements holds optional biometric inputs
type Measurements struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Age      int     `json:"age,omitempty"`
}

// AssessmentResult is the two-axis engine output
type AssessmentResult struct {
	Tallies     map[Category]CategoryTally `json:"tallies"`
	Percentages map[Category]float64       `json:"percentages"`
	Strengths   []ScoredItem               `json:"strengths"`
	Gaps        []ScoredItem               `json:"gaps"`
	Summary     string                     `json:"summary"`
}

// DimensionVector holds raw four-axis totals
type DimensionVector struct {
	Physical     int `json:"physical"`
	Mental       int `json:"mental"`
	Social       int `json:"social"`
	Intellectual int `json:"intellectual"`
}

// Add accumulates one dimension contribution.
func (v *DimensionVector) Add(d Dimension, value int) {
	switch d {
	case DimensionPhysical:
		v.Physical += value
	case DimensionMental:
		v.Mental += value
	case DimensionSocial:
		v.Social += value
	case DimensionIntellectual:
		v.Intellectual += value
	}
}

// Get returns the total for a dimension.
func (v DimensionVector) Get(d Dimension) int {
	switch d {
	case DimensionPhysical:
		return v.Physical
	case DimensionMental:
		return v.Mental
	case DimensionSocial:
		return v.Social
	case DimensionIntellectual:
		return v.Intellectual
	default:
		return 0
	}
}

// Total returns the sum of all four dimensions.
func (v DimensionVector) Total() int {
	return v.Physical + v.Mental + v.Social + v.Intellectual
}

// Profile is a named holistic classification selected by a predicate over the dimension vector
type Profile struct {
	Name           string                      `json:"name"`
	Description    string                      `json:"description"`
	Detail         string                      `json:"detail"`
	Recommendation string                      `json:"recommendation"`
	Predicate      func(DimensionVector) bool `json:"-"`
}

// ProfileResult is the four-axis engine output
type ProfileResult struct {
	Dimensions DimensionVector `json:"dimensions"`
	Profile    Profile         `json:"profile"`
}
