package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/observability"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/profile"
	"github.com/jonathan/health-check/internal/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Match a holistic profile from dimensional answers",
	Long: `Scores answers to the dimensional questionnaire on the physical, mental, social and
intellectual axes and prints the first matching holistic profile.`,
	RunE: runProfile,
}

var (
	profileAnswersPath string
	profileAnswers     []string
	profileJSON        bool
)

func init() {
	profileCmd.Flags().StringVarP(&profileAnswersPath, "answers", "a", "", "Path to answers file (YAML or JSON, - for stdin)")
	profileCmd.Flags().StringArrayVar(&profileAnswers, "answer", nil, "Answer as question=index (repeatable)")
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest(profileAnswersPath, profileAnswers, cmd.InOrStdin())
	if err != nil {
		return err
	}
	profileReq := &types.ProfileRequest{Answers: req.Answers}
	if err := profileReq.Validate(); err != nil {
		return err
	}

	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}
	if err := pipeline.CheckAnswers(e.dimensional, profileReq.Answers); err != nil {
		return err
	}

	result := pipeline.EvaluateProfile(e.dimensional, profileReq.Answers, profile.DefaultTable())

	if profileJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(result)
	return nil
}
