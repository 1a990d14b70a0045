package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/profile"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/summary"
	"github.com/jonathan/health-check/internal/types"
)

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func bestAnswersJSON(t *testing.T, cat *catalog.Catalog) string {
	t.Helper()
	answers := types.Answers{}
	for _, q := range cat.Questions() {
		best := 0
		for i, c := range q.Choices {
			if c.Score > q.Choices[best].Score {
				best = i
			}
		}
		answers[q.ID] = best
	}
	data, err := json.Marshal(answers)
	require.NoError(t, err)
	return string(data)
}

func TestListQuestionsTool(t *testing.T) {
	holistic := catalog.MustDefault()
	dimensional := catalog.MustDefaultDimensional()
	tool := NewListQuestionsTool(holistic, dimensional)

	assert.Equal(t, "list_questions", tool.Definition().Name)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(res)
	assert.Contains(t, text, holistic.Questions()[0].ID)
	assert.Contains(t, text, "0. "+holistic.Questions()[0].Choices[0].Text)

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"catalog": "dimensional"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(res), dimensional.Questions()[0].ID)

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"catalog": "other"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestScoreTool_Definition(t *testing.T) {
	def := NewScoreTool(catalog.MustDefault(), scoring.Options{}).Definition()

	assert.Equal(t, "score_assessment", def.Name)
	assert.Contains(t, def.InputSchema.Required, "answers")
	for _, key := range []string{"answers", "weight_kg", "height_cm", "age"} {
		_, ok := def.InputSchema.Properties[key]
		assert.True(t, ok, "missing %q parameter", key)
	}
}

func TestScoreTool_Handle(t *testing.T) {
	cat := catalog.MustDefault()
	tool := NewScoreTool(cat, scoring.Options{})

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers": bestAnswersJSON(t, cat),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(res))

	var result types.AssessmentResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &result))
	assert.Empty(t, result.Gaps)
	assert.Equal(t, summary.Congratulations, result.Summary)
}

func TestScoreTool_Biometrics(t *testing.T) {
	cat := catalog.MustDefault()
	tool := NewScoreTool(cat, scoring.Options{})

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers":   bestAnswersJSON(t, cat),
		"weight_kg": 120.0,
		"height_cm": 170.0,
		"age":       40.0,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(res))

	var result types.AssessmentResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &result))
	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "Body Mass Index", result.Gaps[0].Topic)
}

func TestScoreTool_AnswersAsObject(t *testing.T) {
	tool := NewScoreTool(catalog.MustDefault(), scoring.Options{})

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers": map[string]interface{}{"p01_sleep_hours": 0.0},
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(res))
}

func TestScoreTool_Errors(t *testing.T) {
	tool := NewScoreTool(catalog.MustDefault(), scoring.Options{})

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{name: "missing", args: map[string]interface{}{}, want: "required"},
		{name: "not json", args: map[string]interface{}{"answers": "{nope"}, want: "choice indexes"},
		{name: "empty", args: map[string]interface{}{"answers": "{}"}, want: "empty"},
		{name: "unknown question", args: map[string]interface{}{"answers": `{"zz": 0}`}, want: "unknown question"},
		{name: "out of range", args: map[string]interface{}{"answers": `{"p01_sleep_hours": 42}`}, want: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
		})
	}
}

func TestProfileTool(t *testing.T) {
	cat := catalog.MustDefaultDimensional()
	tool := NewProfileTool(cat, profile.DefaultTable())

	assert.Equal(t, "match_profile", tool.Definition().Name)

	answers := map[string]int{}
	for _, q := range cat.Questions() {
		answers[q.ID] = 2
	}
	data, err := json.Marshal(answers)
	require.NoError(t, err)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"answers": string(data)}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(res))

	text := resultText(res)
	assert.Contains(t, text, "profile: thriving_all_rounder")
	assert.Contains(t, text, "**Mental**: 11")
	assert.True(t, strings.HasPrefix(text, "## "))
}

func TestProfileTool_Errors(t *testing.T) {
	tool := NewProfileTool(catalog.MustDefaultDimensional(), profile.DefaultTable())

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"answers": `{"p01_sleep_hours": 0}`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNewServer(t *testing.T) {
	s := NewServer(Config{
		Version:     "test",
		Holistic:    catalog.MustDefault(),
		Dimensional: catalog.MustDefaultDimensional(),
		Profiles:    profile.DefaultTable(),
	})
	require.NotNil(t, s)
}
