package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/mcptools"
	"github.com/jonathan/health-check/internal/profile"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the engine as MCP tools over stdio",
	Long:  "Starts a Model Context Protocol server on stdin/stdout with the list_questions, score_assessment and match_profile tools.",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	// stdout carries the protocol, so logs go to stderr
	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}

	s := mcptools.NewServer(mcptools.Config{
		Version:     version,
		Holistic:    e.holistic,
		Dimensional: e.dimensional,
		Profiles:    profile.DefaultTable(),
		Scoring:     e.scoringOptions(),
	})
	return server.ServeStdio(s)
}
