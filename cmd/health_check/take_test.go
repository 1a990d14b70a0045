package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/types"
)

// scriptedAsker replays canned answers and records what was asked
type scriptedAsker struct {
	choices []int
	inputs  []string
	labels  []string
	items   [][]string
}

func (s *scriptedAsker) Choose(label string, items []string, _ int) (int, error) {
	s.labels = append(s.labels, label)
	s.items = append(s.items, items)
	if len(s.choices) == 0 {
		return 0, errQuit
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c, nil
}

func (s *scriptedAsker) Ask(label string, validate func(string) error) (string, error) {
	s.labels = append(s.labels, label)
	if len(s.inputs) == 0 {
		return "", errQuit
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	if err := validate(v); err != nil {
		return "", fmt.Errorf("scripted input %q rejected: %w", v, err)
	}
	return v, nil
}

func newTestFlow(cat *catalog.Catalog, a asker, measure bool) (*takeFlow, *[]*types.AssessmentRequest, *bytes.Buffer) {
	var out bytes.Buffer
	var seen []*types.AssessmentRequest
	flow := &takeFlow{
		catalog: cat,
		asker:   a,
		out:     &out,
		measure: measure,
		run: func(req *types.AssessmentRequest) (*pipeline.RunResult, error) {
			seen = append(seen, req)
			return &pipeline.RunResult{
				Result:  pipeline.Evaluate(cat, req.Answers, req.Measurements, scoring.Options{}),
				Outcome: &persistence.Outcome{Success: true, Message: "Saved to test", Target: persistence.TargetLocal},
			}, nil
		},
	}
	return flow, &seen, &out
}

func TestTakeFlow_AnswersEveryQuestion(t *testing.T) {
	cat := catalog.MustDefault()

	script := &scriptedAsker{choices: []int{0}}
	for i := 0; i < cat.Len(); i++ {
		script.choices = append(script.choices, 1)
	}
	script.choices = append(script.choices, 2) // quit from results

	flow, seen, out := newTestFlow(cat, script, false)
	err := flow.Run()
	require.True(t, errors.Is(err, errQuit), "got %v", err)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Len(t, req.Answers, cat.Len())
	for _, idx := range req.Answers {
		assert.Equal(t, 1, idx)
	}
	assert.Nil(t, req.Measurements)
	assert.Contains(t, out.String(), "SCORES")
	assert.Contains(t, out.String(), "Saved to test")
	assert.Contains(t, script.labels[1], fmt.Sprintf("[1/%d]", cat.Len()))
}

func TestTakeFlow_Measurements(t *testing.T) {
	cat := catalog.MustDefault()

	script := &scriptedAsker{choices: []int{0}, inputs: []string{"70", "175", ""}}
	for i := 0; i < cat.Len(); i++ {
		script.choices = append(script.choices, 0)
	}
	script.choices = append(script.choices, 2)

	flow, seen, _ := newTestFlow(cat, script, true)
	require.ErrorIs(t, flow.Run(), errQuit)

	require.Len(t, *seen, 1)
	require.NotNil(t, (*seen)[0].Measurements)
	assert.Equal(t, 70.0, (*seen)[0].Measurements.WeightKg)
	assert.Equal(t, 175.0, (*seen)[0].Measurements.HeightCm)
	assert.Zero(t, (*seen)[0].Measurements.Age)
}

func TestTakeFlow_SkipMeasurements(t *testing.T) {
	cat := catalog.MustDefault()

	script := &scriptedAsker{choices: []int{0}, inputs: []string{""}}
	flow, _, _ := newTestFlow(cat, script, true)
	require.ErrorIs(t, flow.Run(), errQuit)

	// weight prompt, then straight to the first question
	assert.Len(t, script.inputs, 0)
	assert.Contains(t, script.labels[2], "[1/")
}

func TestTakeFlow_BackAndSkip(t *testing.T) {
	cat := catalog.MustDefault()
	first := cat.At(0)
	second := cat.At(1)
	skip := len(second.Choices)
	back := len(second.Choices) + 1

	script := &scriptedAsker{choices: []int{
		0,    // start
		2,    // answer first
		back, // back from second
		3,    // re-answer first
		skip, // skip second
	}}
	flow, _, _ := newTestFlow(cat, script, false)
	require.ErrorIs(t, flow.Run(), errQuit)

	// first question has no Back item, the second does
	assert.NotContains(t, script.items[1], itemBack)
	assert.Contains(t, script.items[2], itemBack)
	assert.Contains(t, script.labels[3], first.Text)
	assert.Contains(t, script.labels[5], cat.At(2).Text)
}

func TestTakeFlow_RestartClearsAnswers(t *testing.T) {
	cat := catalog.MustDefault()

	script := &scriptedAsker{choices: []int{0}}
	for i := 0; i < cat.Len(); i++ {
		script.choices = append(script.choices, 0)
	}
	script.choices = append(script.choices, 0, 1) // restart, then quit at landing

	flow, seen, _ := newTestFlow(cat, script, false)
	require.ErrorIs(t, flow.Run(), errQuit)
	require.Len(t, *seen, 1)
	assert.Equal(t, "Ready?", script.labels[len(script.labels)-1])
}

func TestTakeFlow_ReviewReturnsToLastQuestion(t *testing.T) {
	cat := catalog.MustDefault()

	script := &scriptedAsker{choices: []int{0}}
	for i := 0; i < cat.Len(); i++ {
		script.choices = append(script.choices, 0)
	}
	script.choices = append(script.choices, 1, 1, 2) // review, answer last again, quit

	flow, seen, _ := newTestFlow(cat, script, false)
	require.ErrorIs(t, flow.Run(), errQuit)

	require.Len(t, *seen, 2)
	last := cat.At(cat.Len() - 1)
	assert.Equal(t, 1, (*seen)[1].Answers[last.ID])
}

func TestValidateOptionalNumber(t *testing.T) {
	assert.NoError(t, validateOptionalNumber(""))
	assert.NoError(t, validateOptionalNumber(" 72.5 "))
	assert.Error(t, validateOptionalNumber("abc"))
	assert.Error(t, validateOptionalNumber("-3"))
	assert.Error(t, validateOptionalNumber("0"))
}
