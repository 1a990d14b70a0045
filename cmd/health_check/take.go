package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/observability"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/session"
	"github.com/jonathan/health-check/internal/types"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Answer the questionnaire interactively",
	Long: `Walks through the holistic questionnaire one question at a time. Use the arrow keys to
pick an answer, "Back" to revisit the previous question and "Skip" to leave one
unanswered. Results are shown at the end and can optionally be saved.`,
	RunE: runTake,
}

var (
	takeMeasure    bool
	takePersist    bool
	takeRespondent string
)

func init() {
	takeCmd.Flags().BoolVar(&takeMeasure, "measure", true, "Ask for weight and height to include BMI")
	takeCmd.Flags().BoolVar(&takePersist, "persist", false, "Save the result when finished")
	takeCmd.Flags().StringVar(&takeRespondent, "respondent", "", "Respondent identifier (stored only as a keyed hash)")

	rootCmd.AddCommand(takeCmd)
}

// Menu entries shown next to a question's choices
const (
	itemBack = "← Back"
	itemSkip = "Skip"

	itemStart   = "Start the assessment"
	itemQuit    = "Quit"
	itemRestart = "Start over"
	itemReview  = "Change my last answer"
)

var errQuit = errors.New("quit")

// asker is the terminal surface of the interactive flow
type asker interface {
	Choose(label string, items []string, cursor int) (int, error)
	Ask(label string, validate func(string) error) (string, error)
}

// promptAsker asks through promptui
type promptAsker struct{}

func (promptAsker) Choose(label string, items []string, cursor int) (int, error) {
	sel := promptui.Select{Label: label, Items: items, Size: len(items), CursorPos: cursor}
	idx, _, err := sel.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return 0, errQuit
	}
	return idx, err
}

func (promptAsker) Ask(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{Label: label, Validate: validate}
	v, err := p.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errQuit
	}
	return v, err
}

func runTake(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}

	flow := &takeFlow{
		catalog: e.holistic,
		asker:   promptAsker{},
		out:     cmd.OutOrStdout(),
		measure: takeMeasure,
		run: func(req *types.AssessmentRequest) (*pipeline.RunResult, error) {
			opts := pipeline.RunOptions{
				Catalog:       e.holistic,
				Request:       req,
				Scoring:       e.scoringOptions(),
				RespondentKey: []byte(e.cfg.RespondentHashKey),
			}
			if takePersist {
				st, err := openStorage(ctx, e, nil)
				if err != nil {
					return nil, err
				}
				defer st.Close()
				opts.Persister = st.fallback
				req.Persist = true
				req.Respondent = takeRespondent
			}
			return pipeline.RunAssessment(ctx, opts)
		},
	}

	err = flow.Run()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// takeFlow drives a session.State through landing, questions and results
type takeFlow struct {
	catalog *catalog.Catalog
	asker   asker
	out     io.Writer
	measure bool
	run     func(req *types.AssessmentRequest) (*pipeline.RunResult, error)
}

// Run loops until the respondent quits.
func (f *takeFlow) Run() error {
	state := session.New()
	for {
		var err error
		switch state.Step {
		case session.StepLanding:
			err = f.landing(state)
		case session.StepAssessment:
			err = f.question(state)
		case session.StepResults:
			err = f.results(state)
		}
		if err != nil {
			return err
		}
	}
}

func (f *takeFlow) landing(state *session.State) error {
	fmt.Fprintf(f.out, "\n%s\n", observability.Bold("Holistic Health Check"))
	fmt.Fprintf(f.out, "%d questions about sleep, movement, food, stress and connection. There are no wrong answers.\n\n", f.catalog.Len())

	idx, err := f.asker.Choose("Ready?", []string{itemStart, itemQuit}, 0)
	if err != nil {
		return err
	}
	if idx == 1 {
		return errQuit
	}

	if f.measure {
		m, err := f.measurements()
		if err != nil {
			return err
		}
		state.Measurements = m
	}
	return state.Begin(f.catalog)
}

// measurements asks for optional biometrics; blank weight skips them.
func (f *takeFlow) measurements() (*types.Measurements, error) {
	weight, err := f.askNumber("Weight in kg (blank to skip)")
	if err != nil || weight == 0 {
		return nil, err
	}
	height, err := f.askNumber("Height in cm")
	if err != nil {
		return nil, err
	}
	age, err := f.askNumber("Age (blank to skip)")
	if err != nil {
		return nil, err
	}
	return &types.Measurements{WeightKg: weight, HeightCm: height, Age: int(age)}, nil
}

func (f *takeFlow) askNumber(label string) (float64, error) {
	raw, err := f.asker.Ask(label, validateOptionalNumber)
	if err != nil {
		return 0, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func validateOptionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func (f *takeFlow) question(state *session.State) error {
	q, ok := state.Current(f.catalog)
	if !ok {
		return fmt.Errorf("no question at index %d", state.Index)
	}
	pos, total := state.Progress(f.catalog)

	items := make([]string, 0, len(q.Choices)+2)
	for _, c := range q.Choices {
		items = append(items, c.Text)
	}
	items = append(items, itemSkip)
	if state.Index > 0 {
		items = append(items, itemBack)
	}

	cursor := 0
	if prev, ok := state.Answers[q.ID]; ok {
		cursor = prev
	}

	label := fmt.Sprintf("[%d/%d] %s %s", pos, total, q.Icon, q.Text)
	idx, err := f.asker.Choose(strings.TrimSpace(label), items, cursor)
	if err != nil {
		return err
	}

	switch {
	case idx < len(q.Choices):
		return state.Answer(f.catalog, idx)
	case items[idx] == itemSkip:
		return state.Skip(f.catalog)
	default:
		return state.Back(f.catalog)
	}
}

func (f *takeFlow) results(state *session.State) error {
	req := &types.AssessmentRequest{Answers: state.Answers, Measurements: state.Measurements}
	if len(req.Answers) == 0 {
		fmt.Fprintln(f.out, "No questions were answered.")
	} else {
		res, err := f.run(req)
		if err != nil {
			return err
		}
		printer := observability.NewPrinter(f.out)
		printer.PrintAssessment(res.Result)
		if res.Outcome != nil {
			printer.PrintOutcome(res.Outcome)
		}
	}

	idx, err := f.asker.Choose("What next?", []string{itemRestart, itemReview, itemQuit}, 0)
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		state.Restart()
		return nil
	case 1:
		return state.Back(f.catalog)
	default:
		return errQuit
	}
}
