// Package session holds the navigation state of an interactive questionnaire run.
// The state is a plain value owned by the presentation layer; the engine never sees it.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/types"
)

// Step is a screen of the questionnaire flow
type Step string

const (
	StepLanding    Step = "landing"
	StepAssessment Step = "assessment"
	StepResults    Step = "results"
)

var (
	// ErrWrongStep is returned when an action does not apply to the current step.
	ErrWrongStep = errors.New("action not allowed at this step")
	// ErrEmptyCatalog is returned when a run is started on a catalog without questions.
	ErrEmptyCatalog = errors.New("catalog has no questions")
)

// State tracks where a respondent is in the flow and what they have answered
type State struct {
	ID           uuid.UUID           `json:"id"`
	Step         Step                `json:"step"`
	Index        int                 `json:"index"`
	Answers      types.Answers       `json:"answers"`
	Measurements *types.Measurements `json:"measurements,omitempty"`
}

// New returns a fresh state on the landing step.
func New() *State {
	return &State{ID: uuid.New(), Step: StepLanding, Answers: types.Answers{}}
}

// Begin moves from the landing step to the first question.
func (s *State) Begin(cat *catalog.Catalog) error {
	if s.Step != StepLanding {
		return fmt.Errorf("begin: %w", ErrWrongStep)
	}
	if cat.Len() == 0 {
		return ErrEmptyCatalog
	}
	s.Step = StepAssessment
	s.Index = 0
	return nil
}

// Current returns the question on screen.
func (s *State) Current(cat *catalog.Catalog) (types.Question, bool) {
	if s.Step != StepAssessment || s.Index < 0 || s.Index >= cat.Len() {
		return types.Question{}, false
	}
	return cat.At(s.Index), true
}

// Answer records a choice for the current question and advances. Answering the
// last question moves to the results step.
func (s *State) Answer(cat *catalog.Catalog, choice int) error {
	q, ok := s.Current(cat)
	if !ok {
		return fmt.Errorf("answer: %w", ErrWrongStep)
	}
	if choice < 0 || choice >= len(q.Choices) {
		return fmt.Errorf("answer %s: choice %d out of range [0, %d)", q.ID, choice, len(q.Choices))
	}
	s.Answers[q.ID] = choice
	s.advance(cat)
	return nil
}

// Skip advances without answering.
func (s *State) Skip(cat *catalog.Catalog) error {
	if _, ok := s.Current(cat); !ok {
		return fmt.Errorf("skip: %w", ErrWrongStep)
	}
	s.advance(cat)
	return nil
}

// Back returns to the previous question. From the results step it reopens the last
// question; on the first question it does nothing. Recorded answers are kept.
func (s *State) Back(cat *catalog.Catalog) error {
	switch s.Step {
	case StepAssessment:
		if s.Index > 0 {
			s.Index--
		}
		return nil
	case StepResults:
		s.Step = StepAssessment
		s.Index = cat.Len() - 1
		return nil
	default:
		return fmt.Errorf("back: %w", ErrWrongStep)
	}
}

// Restart clears every answer and returns to the landing step.
func (s *State) Restart() {
	*s = *New()
}

// Progress returns the one-based position of the current question and the total.
func (s *State) Progress(cat *catalog.Catalog) (position, total int) {
	total = cat.Len()
	switch s.Step {
	case StepResults:
		return total, total
	case StepAssessment:
		return s.Index + 1, total
	default:
		return 0, total
	}
}

// IsLast reports whether the current question is the final one.
func (s *State) IsLast(cat *catalog.Catalog) bool {
	return s.Step == StepAssessment && s.Index == cat.Len()-1
}

func (s *State) advance(cat *catalog.Catalog) {
	if s.Index >= cat.Len()-1 {
		s.Step = StepResults
		return
	}
	s.Index++
}
