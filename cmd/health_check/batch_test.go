package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/types"
)

func TestScoreFiles_MatchesSequentialEvaluation(t *testing.T) {
	cat := catalog.MustDefault()

	var files []string
	var want []*types.AssessmentResult
	for i, q := range cat.Questions() {
		choice := i % len(q.Choices)
		files = append(files, writeFile(t, fmt.Sprintf("a%02d.yaml", i), fmt.Sprintf("%s: %d\n", q.ID, choice)))
		want = append(want, pipeline.Evaluate(cat, types.Answers{q.ID: choice}, nil, scoring.Options{}))
	}

	lines, err := scoreFiles(context.Background(), cat, scoring.Options{}, files, nil, 4, false)
	require.NoError(t, err)
	require.Len(t, lines, len(files))
	for i, line := range lines {
		assert.Equal(t, files[i], line.File)
		assert.Empty(t, line.Error)
		assert.Equal(t, want[i], line.Result)
	}
}

func TestScoreFiles_ZeroWorkers(t *testing.T) {
	path := writeFile(t, "a.yaml", "p01_sleep_hours: 1\n")

	lines, err := scoreFiles(context.Background(), catalog.MustDefault(), scoring.Options{}, []string{path}, nil, 0, false)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.NotNil(t, lines[0].Result)
}

func TestScoreFile_ValidationError(t *testing.T) {
	path := writeFile(t, "neg.yaml", "p01_sleep_hours: -1\n")

	line := scoreFile(catalog.MustDefault(), scoring.Options{}, path, nil)
	assert.Nil(t, line.Result)
	assert.NotEmpty(t, line.Error)
}

func TestScoreFiles_StdinReadOnce(t *testing.T) {
	path := writeFile(t, "a.yaml", "p01_sleep_hours: 1\n")
	stdin := strings.NewReader(`{"p01_sleep_hours": 0}`)

	lines, err := scoreFiles(context.Background(), catalog.MustDefault(), scoring.Options{}, []string{path, "-"}, stdin, 2, false)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "-", lines[1].File)
	assert.Empty(t, lines[1].Error)
	require.NotNil(t, lines[1].Result)
}

func TestScoreFiles_RejectsRepeatedStdin(t *testing.T) {
	stdin := strings.NewReader(`{"p01_sleep_hours": 0}`)

	_, err := scoreFiles(context.Background(), catalog.MustDefault(), scoring.Options{}, []string{"-", "-"}, stdin, 2, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin (-) given 2 times")
}
