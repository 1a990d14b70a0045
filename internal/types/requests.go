// Package types provides type definitions for structured data used throughout the health-check system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// AssessmentRequest is the collaborator-facing input for a two-axis assessment.
type AssessmentRequest struct {
	Respondent   string        `json:"respondent,omitempty" validate:"omitempty,max=200"`
	Answers      Answers       `json:"answers" validate:"required,dive,keys,required,endkeys,min=0"`
	Measurements *Measurements `json:"measurements,omitempty"`
	Persist      bool          `json:"persist,omitempty"`
}

// ProfileRequest is the collaborator-facing input for a four-axis assessment.
type ProfileRequest struct {
	Answers Answers `json:"answers" validate:"required,dive,keys,required,endkeys,min=0"`
}

// Validate validates the AssessmentRequest using the validator.
func (r *AssessmentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProfileRequest using the validator.
func (r *ProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
