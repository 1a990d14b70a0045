package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"code.cloudfoundry.org/lager/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/config"
	"github.com/jonathan/health-check/internal/db"
	"github.com/jonathan/health-check/internal/observability"
	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/scoring"
)

// env bundles everything a command needs from configuration
type env struct {
	cfg         *config.Config
	logger      lager.Logger
	holistic    *catalog.Catalog
	dimensional *catalog.Catalog
}

// loadEnv resolves configuration, builds the logger and loads both catalogs.
// Logs go to logOut so command output on stdout stays machine-readable.
func loadEnv(logOut io.Writer) (*env, error) {
	cfg, err := config.Resolve(rootConfigPath)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger("health-check", logOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	holistic, err := loadCatalog(cfg.Catalog, catalog.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	dimensional, err := loadCatalog(cfg.DimensionalCatalog, catalog.DefaultDimensional)
	if err != nil {
		return nil, fmt.Errorf("failed to load dimensional catalog: %w", err)
	}
	if holistic.Kind() != catalog.KindTwoAxis {
		return nil, fmt.Errorf("catalog %q is %s, want %s", holistic.Name(), holistic.Kind(), catalog.KindTwoAxis)
	}
	if dimensional.Kind() != catalog.KindFourAxis {
		return nil, fmt.Errorf("catalog %q is %s, want %s", dimensional.Name(), dimensional.Kind(), catalog.KindFourAxis)
	}

	return &env{cfg: cfg, logger: logger, holistic: holistic, dimensional: dimensional}, nil
}

func loadCatalog(path string, builtin func() (*catalog.Catalog, error)) (*catalog.Catalog, error) {
	if path == "" {
		return builtin()
	}
	return catalog.LoadFile(path)
}

func (e *env) scoringOptions() scoring.Options {
	return scoring.Options{CountUnansweredInMax: e.cfg.CountUnansweredInMax}
}

// storage owns the persistence chain and the connections behind it
type storage struct {
	fallback *persistence.Fallback
	local    *persistence.SQLiteSink
	database *db.DB
}

// openStorage builds the remote sink (PostgreSQL or Google Sheets, whichever is
// configured) in front of the local SQLite fallback.
func openStorage(ctx context.Context, e *env, metrics *observability.Metrics) (*storage, error) {
	st := &storage{}

	var remote persistence.Sink
	switch {
	case e.cfg.DatabaseURL != "":
		database, err := db.Connect(ctx, e.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		st.database = database
		remote = persistence.NewPostgresSink(database)
	case e.cfg.SpreadsheetID != "":
		sheet, err := persistence.NewSheetsSink(ctx, e.cfg.SpreadsheetID, e.cfg.SpreadsheetRange, e.cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		remote = sheet
	}

	var local persistence.Sink
	if e.cfg.LocalFallbackPath != "" {
		sqlite, err := persistence.OpenSQLite(e.cfg.LocalFallbackPath)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.local = sqlite
		local = sqlite
	}

	st.fallback = persistence.NewFallback(e.logger, remote, local, uint64(e.cfg.RetryCount), nil)
	st.fallback.OnOutcome = metrics.ObservePersist
	return st, nil
}

// Close releases the database pool and the local file.
func (s *storage) Close() {
	if s.local != nil {
		if err := s.local.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close local store: %v\n", err)
		}
	}
	if s.database != nil {
		s.database.Close()
	}
}

// newMetrics registers collectors on the default registry, which /metrics serves.
func newMetrics() (*observability.Metrics, error) {
	return observability.NewMetrics("", prometheus.DefaultRegisterer)
}
