package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/health-check/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadRequest_BareMapYAML(t *testing.T) {
	path := writeFile(t, "answers.yaml", "p01_sleep_hours: 2\nm01_stress: 0\n")

	req, err := readRequest(path, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Answers{"p01_sleep_hours": 2, "m01_stress": 0}, req.Answers)
	assert.Nil(t, req.Measurements)
}

func TestReadRequest_FullRequestJSON(t *testing.T) {
	path := writeFile(t, "req.json", `{"answers":{"p01_sleep_hours":1},"measurements":{"weight_kg":70,"height_cm":175},"respondent":"x"}`)

	req, err := readRequest(path, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Answers{"p01_sleep_hours": 1}, req.Answers)
	require.NotNil(t, req.Measurements)
	assert.Equal(t, 70.0, req.Measurements.WeightKg)
	assert.Equal(t, "x", req.Respondent)
}

func TestReadRequest_Stdin(t *testing.T) {
	req, err := readRequest("-", strings.NewReader(`{"p02_exercise": 3}`))
	require.NoError(t, err)
	assert.Equal(t, types.Answers{"p02_exercise": 3}, req.Answers)
}

func TestReadRequest_Errors(t *testing.T) {
	_, err := readRequest(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = readRequest(writeFile(t, "list.yaml", "- 1\n- 2\n"), nil)
	assert.Error(t, err)

	_, err = readRequest(writeFile(t, "bad.yaml", "p01_sleep_hours: lots\n"), nil)
	assert.Error(t, err)
}

func TestParseAnswerFlags(t *testing.T) {
	answers, err := parseAnswerFlags([]string{"p01_sleep_hours=2", " m01_stress = 1 "})
	require.NoError(t, err)
	assert.Equal(t, types.Answers{"p01_sleep_hours": 2, "m01_stress": 1}, answers)

	for _, bad := range []string{"p01", "=2", "p01=two"} {
		_, err := parseAnswerFlags([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestBuildRequest(t *testing.T) {
	path := writeFile(t, "answers.yaml", "p01_sleep_hours: 0\np02_exercise: 1\n")

	req, err := buildRequest(path, []string{"p01_sleep_hours=3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Answers{"p01_sleep_hours": 3, "p02_exercise": 1}, req.Answers)

	_, err = buildRequest("", nil, nil)
	assert.ErrorContains(t, err, "no answers")
}
