package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/observability"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/types"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a completed questionnaire",
	Long: `Scores answers to the holistic questionnaire and prints category percentages, gaps
ordered by severity, strengths and a summary of recommendations.

Answers come from a YAML or JSON file (--answers, "-" for stdin) and/or repeated
--answer question=index flags. With --persist the result is saved to the configured
remote sink, falling back to the local file.`,
	RunE: runAssess,
}

var (
	assessAnswersPath string
	assessAnswers     []string
	assessWeight      float64
	assessHeight      float64
	assessAge         int
	assessRespondent  string
	assessPersist     bool
	assessJSON        bool
)

func init() {
	assessCmd.Flags().StringVarP(&assessAnswersPath, "answers", "a", "", "Path to answers file (YAML or JSON, - for stdin)")
	assessCmd.Flags().StringArrayVar(&assessAnswers, "answer", nil, "Answer as question=index (repeatable)")
	assessCmd.Flags().Float64Var(&assessWeight, "weight", 0, "Body weight in kg")
	assessCmd.Flags().Float64Var(&assessHeight, "height", 0, "Height in cm")
	assessCmd.Flags().IntVar(&assessAge, "age", 0, "Age in years")
	assessCmd.Flags().StringVar(&assessRespondent, "respondent", "", "Respondent identifier (stored only as a keyed hash)")
	assessCmd.Flags().BoolVar(&assessPersist, "persist", false, "Save the result")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	req, err := buildRequest(assessAnswersPath, assessAnswers, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("weight") || cmd.Flags().Changed("height") {
		req.Measurements = &types.Measurements{WeightKg: assessWeight, HeightCm: assessHeight, Age: assessAge}
	}
	if cmd.Flags().Changed("respondent") {
		req.Respondent = assessRespondent
	}
	if assessPersist {
		req.Persist = true
	}

	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		Catalog:       e.holistic,
		Request:       req,
		Scoring:       e.scoringOptions(),
		RespondentKey: []byte(e.cfg.RespondentHashKey),
	}
	if req.Persist {
		st, err := openStorage(ctx, e, nil)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Persister = st.fallback
	}

	res, err := pipeline.RunAssessment(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if assessJSON {
		return writeJSON(out, res)
	}

	printer := observability.NewPrinter(out)
	printer.PrintAssessment(res.Result)
	if res.Outcome != nil {
		printer.PrintOutcome(res.Outcome)
		if res.ID != "" {
			fmt.Fprintf(out, "Assessment ID: %s\n", res.ID)
		}
	}
	return nil
}

