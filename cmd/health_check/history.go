package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/persistence"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List assessments held in the local fallback file",
	RunE:  runHistory,
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Push locally held assessments to the remote sink",
	Long: `Sends assessments that were saved to the local fallback file, because the remote sink
was unavailable, to the configured remote sink, oldest first. Stops at the first failure.`,
	RunE: runReplay,
}

var (
	historyLimit int
	historyJSON  bool
	replayLimit  int
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum records to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print as JSON")
	replayCmd.Flags().IntVarP(&replayLimit, "limit", "n", 100, "Maximum records to replay")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}
	local, err := persistence.OpenSQLite(e.cfg.LocalFallbackPath)
	if err != nil {
		return err
	}
	defer local.Close() //nolint:errcheck

	records, err := local.List(ctx, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		return writeJSON(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No local assessments.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tCATALOG\tGAPS")
	for _, rec := range records {
		gaps := 0
		if rec.Result != nil {
			gaps = len(rec.Result.Gaps)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", rec.ID, rec.CreatedAt.Local().Format(time.DateTime), rec.Catalog, gaps)
	}
	return tw.Flush()
}

func runReplay(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}
	st, err := openStorage(ctx, e, nil)
	if err != nil {
		return err
	}
	defer st.Close()
	if st.local == nil {
		return fmt.Errorf("no local fallback file configured")
	}

	synced, err := st.fallback.Replay(ctx, st.local, replayLimit)
	fmt.Fprintf(cmd.OutOrStdout(), "Replayed %d assessment(s)\n", synced)
	return err
}
