// Package main provides the health_check CLI: score questionnaires, run the
// interactive flow, serve the REST API and expose the engine as MCP tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootConfigPath string

var rootCmd = &cobra.Command{
	Use:   "health_check",
	Short: "Holistic health questionnaire engine",
	Long: `health_check scores answers to a lifestyle questionnaire, classifies each item as a
strength or a gap, ranks gaps by severity and writes a summary of recommendations.

Configuration is read from --config (JSON) and then from environment variables, which
may also be placed in a .env file in the working directory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
