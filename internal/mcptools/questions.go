package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jonathan/health-check/internal/catalog"
)

// ListQuestionsTool handles the list_questions MCP tool.
type ListQuestionsTool struct {
	holistic    *catalog.Catalog
	dimensional *catalog.Catalog
}

// NewListQuestionsTool creates a ListQuestionsTool over both catalogs.
func NewListQuestionsTool(holistic, dimensional *catalog.Catalog) *ListQuestionsTool {
	return &ListQuestionsTool{holistic: holistic, dimensional: dimensional}
}

// Definition returns the MCP tool definition for list_questions.
func (t *ListQuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_questions",
		mcp.WithDescription(
			"List the questionnaire with question IDs and numbered choices. "+
				"Answers for score_assessment and match_profile use these IDs and zero-based choice indexes.",
		),
		mcp.WithString("catalog",
			mcp.Description("Which questionnaire: holistic (default, used by score_assessment) or dimensional (used by match_profile)"),
		),
	)
}

// Handle processes the list_questions tool call.
func (t *ListQuestionsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := t.holistic
	switch name := req.GetString("catalog", "holistic"); name {
	case "holistic", "":
	case "dimensional":
		cat = t.dimensional
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown catalog %q: use holistic or dimensional", name)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%d questions)\n", cat.Name(), cat.Len())

	var current string
	for _, q := range cat.Questions() {
		if string(q.Category) != current {
			current = string(q.Category)
			fmt.Fprintf(&b, "\n### %s\n", current)
		}
		fmt.Fprintf(&b, "\n- **%s**: %s\n", q.ID, q.Text)
		for i, c := range q.Choices {
			fmt.Fprintf(&b, "  %d. %s\n", i, c.Text)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
