package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/profile"
)

// ProfileTool handles the match_profile MCP tool.
type ProfileTool struct {
	catalog *catalog.Catalog
	table   profile.Table
}

// NewProfileTool creates a ProfileTool.
func NewProfileTool(cat *catalog.Catalog, table profile.Table) *ProfileTool {
	return &ProfileTool{catalog: cat, table: table}
}

// Definition returns the MCP tool definition for match_profile.
func (t *ProfileTool) Definition() mcp.Tool {
	return mcp.NewTool("match_profile",
		mcp.WithDescription(
			"Score dimensional questionnaire answers on the physical, mental, social and "+
				"intellectual axes and return the matching holistic profile.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description("JSON object of dimensional question ID to zero-based choice index"),
		),
	)
}

// Handle processes the match_profile tool call.
func (t *ProfileTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := answersArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := pipeline.CheckAnswers(t.catalog, answers); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := pipeline.EvaluateProfile(t.catalog, answers, t.table)
	v := result.Dimensions

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", result.Profile.Description)
	fmt.Fprintf(&b, "- **Physical**: %d\n- **Mental**: %d\n- **Social**: %d\n- **Intellectual**: %d\n\n",
		v.Physical, v.Mental, v.Social, v.Intellectual)
	if result.Profile.Detail != "" {
		fmt.Fprintf(&b, "%s\n\n", result.Profile.Detail)
	}
	if result.Profile.Recommendation != "" {
		fmt.Fprintf(&b, "**Recommendation**: %s\n", result.Profile.Recommendation)
	}
	fmt.Fprintf(&b, "\nprofile: %s\n", result.Profile.Name)

	return mcp.NewToolResultText(b.String()), nil
}
