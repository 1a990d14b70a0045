package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/profile"
	"github.com/jonathan/health-check/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the questionnaire, scores assessments, matches
profiles, serves stored assessments and publishes Prometheus metrics at /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}
	port := e.cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	metrics, err := newMetrics()
	if err != nil {
		return err
	}
	st, err := openStorage(ctx, e, metrics)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := server.Config{
		Port:          port,
		Logger:        e.logger,
		Catalog:       e.holistic,
		Dimensional:   e.dimensional,
		Profiles:      profile.DefaultTable(),
		Scoring:       e.scoringOptions(),
		Persister:     st.fallback,
		RespondentKey: []byte(e.cfg.RespondentHashKey),
		Metrics:       metrics,
	}
	if st.database != nil {
		cfg.Store = st.database
	}
	if st.local != nil {
		cfg.Local = st.local
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
