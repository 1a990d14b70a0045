package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonathan/health-check/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the questionnaire",
	Long:  "Prints the configured holistic questionnaire, or the dimensional one with --dimensional, with question IDs and choice indexes for use with --answer.",
	RunE:  runCatalog,
}

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog FILE",
	Short: "Check a catalog file",
	Long:  "Loads a YAML or JSON catalog, checks it against the catalog schema and the structural rules, and lists every problem found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateCatalog,
}

var (
	catalogDimensional bool
	catalogJSON        bool
)

func init() {
	catalogCmd.Flags().BoolVar(&catalogDimensional, "dimensional", false, "Print the dimensional questionnaire")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCatalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(os.Stderr)
	if err != nil {
		return err
	}
	cat := e.holistic
	if catalogDimensional {
		cat = e.dimensional
	}

	out := cmd.OutOrStdout()
	if catalogJSON {
		return writeJSON(out, map[string]any{
			"name":      cat.Name(),
			"kind":      cat.Kind(),
			"questions": cat.Questions(),
		})
	}
	printCatalog(out, cat)
	return nil
}

func printCatalog(out io.Writer, cat *catalog.Catalog) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s (%s, %d questions)\n", bold(cat.Name()), cat.Kind(), cat.Len())
	var current string
	for _, q := range cat.Questions() {
		if string(q.Category) != current {
			current = string(q.Category)
			fmt.Fprintf(out, "\n%s\n", bold(current))
		}
		fmt.Fprintf(out, "  %s %s\n", faint(q.ID), q.Text)
		for i, c := range q.Choices {
			fmt.Fprintf(out, "    %d. %s\n", i, c.Text)
		}
	}
}

func runValidateCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cat, err := catalog.LoadFile(args[0])
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations() {
				fmt.Fprintf(out, "  ✘ %v\n", v)
			}
		}
		return fmt.Errorf("catalog %s is invalid: %w", args[0], err)
	}

	fmt.Fprintf(out, "✔ %s: %s catalog %q with %d questions in %d categories\n",
		args[0], cat.Kind(), cat.Name(), cat.Len(), len(cat.Categories()))
	return nil
}
