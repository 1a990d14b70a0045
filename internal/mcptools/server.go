package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/profile"
	"github.com/jonathan/health-check/internal/scoring"
)

// Config holds the engine inputs shared by every tool.
type Config struct {
	Version     string
	Holistic    *catalog.Catalog
	Dimensional *catalog.Catalog
	Profiles    profile.Table
	Scoring     scoring.Options
}

// NewServer builds an MCP server with the questionnaire tools registered.
func NewServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer(
		"health-check",
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	list := NewListQuestionsTool(cfg.Holistic, cfg.Dimensional)
	s.AddTool(list.Definition(), list.Handle)

	score := NewScoreTool(cfg.Holistic, cfg.Scoring)
	s.AddTool(score.Definition(), score.Handle)

	match := NewProfileTool(cfg.Dimensional, cfg.Profiles)
	s.AddTool(match.Definition(), match.Handle)

	return s
}
