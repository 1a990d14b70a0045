package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/types"
)

// ScoreTool handles the score_assessment MCP tool.
type ScoreTool struct {
	catalog *catalog.Catalog
	opts    scoring.Options
}

// NewScoreTool creates a ScoreTool.
func NewScoreTool(cat *catalog.Catalog, opts scoring.Options) *ScoreTool {
	return &ScoreTool{catalog: cat, opts: opts}
}

// Definition returns the MCP tool definition for score_assessment.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_assessment",
		mcp.WithDescription(
			"Score holistic questionnaire answers. Returns category percentages, strengths, "+
				"gaps ordered by severity and a summary of recommendations as JSON.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`JSON object of question ID to zero-based choice index, e.g. {"p01_sleep_hours": 2}`),
		),
		mcp.WithNumber("weight_kg",
			mcp.Description("Body weight in kilograms (optional, enables the BMI item)"),
		),
		mcp.WithNumber("height_cm",
			mcp.Description("Height in centimetres (optional, enables the BMI item)"),
		),
		mcp.WithNumber("age",
			mcp.Description("Age in years (optional, informational)"),
		),
	)
}

// Handle processes the score_assessment tool call.
func (t *ScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := answersArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := pipeline.CheckAnswers(t.catalog, answers); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var bio *types.Measurements
	weight := floatArg(req, "weight_kg", 0)
	height := floatArg(req, "height_cm", 0)
	if weight != 0 || height != 0 {
		bio = &types.Measurements{
			WeightKg: weight,
			HeightCm: height,
			Age:      int(floatArg(req, "age", 0)),
		}
	}

	result := pipeline.Evaluate(t.catalog, answers, bio, t.opts)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
