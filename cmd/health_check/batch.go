package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"code.cloudfoundry.org/lager/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/scoring"
	"github.com/jonathan/health-check/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Score many answer files concurrently",
	Long: `Scores every answers file and writes one JSON line per file, in argument order.
A file that fails to load or validate produces a line with an "error" field; use
--fail-fast to stop at the first failure instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchWorkers  int
	batchFailFast bool
)

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of files scored in parallel")
	batchCmd.Flags().BoolVar(&batchFailFast, "fail-fast", false, "Stop at the first file that fails")

	rootCmd.AddCommand(batchCmd)
}

// batchLine is one JSON line of batch output
type batchLine struct {
	File   string                  `json:"file"`
	Result *types.AssessmentResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}
	logger := e.logger.Session("batch")

	lines, err := scoreFiles(context.Background(), e.holistic, e.scoringOptions(), args, cmd.InOrStdin(), batchWorkers, batchFailFast)
	if err != nil {
		logger.Error("failed", err)
		return err
	}
	logger.Info("done", lager.Data{"files": len(lines)})
	return writeLines(cmd.OutOrStdout(), lines)
}

// scoreFiles evaluates every file with at most workers in flight. The engine is
// stateless and the catalog read-only, so files share both without locking.
// "-" reads stdin; it is read once before any worker starts and may appear only once.
func scoreFiles(ctx context.Context, cat *catalog.Catalog, opts scoring.Options, files []string, stdin io.Reader, workers int, failFast bool) ([]batchLine, error) {
	if workers < 1 {
		workers = 1
	}

	var stdinData []byte
	if n := countStdin(files); n > 1 {
		return nil, fmt.Errorf("stdin (-) given %d times, it can be read only once", n)
	} else if n == 1 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		stdinData = data
	}

	lines := make([]batchLine, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines[i] = scoreFile(cat, opts, path, stdinData)
			if failFast && lines[i].Error != "" {
				return fmt.Errorf("%s: %s", path, lines[i].Error)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

func countStdin(files []string) int {
	n := 0
	for _, f := range files {
		if f == "-" {
			n++
		}
	}
	return n
}

func scoreFile(cat *catalog.Catalog, opts scoring.Options, path string, stdin []byte) batchLine {
	line := batchLine{File: path}

	req, err := readRequest(path, bytes.NewReader(stdin))
	if err != nil {
		line.Error = err.Error()
		return line
	}
	if err := req.Validate(); err != nil {
		line.Error = err.Error()
		return line
	}
	if err := pipeline.CheckAnswers(cat, req.Answers); err != nil {
		line.Error = err.Error()
		return line
	}

	line.Result = pipeline.Evaluate(cat, req.Answers, req.Measurements, opts)
	return line
}

func writeLines(w io.Writer, lines []batchLine) error {
	enc := json.NewEncoder(w)
	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}
