// Package observability provides formatted terminal output, structured logging and
// Prometheus metrics for the CLI and server.
package observability

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the number of cells in a percentage bar
	barWidth = 20
	// noStrengths is shown when nothing scored above the gap threshold
	noStrengths = "Keep going, every small habit counts!"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are wrapped.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, boxWidth-4))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAssessment outputs category bars, the recommendation summary and strength cards.
func (p *Printer) PrintAssessment(result *types.AssessmentResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	for _, c := range types.AllCategories {
		if _, ok := result.Tallies[c]; !ok {
			continue
		}
		t := result.Tallies[c]
		pct := result.Percentages[c]
		sb.WriteString(fmt.Sprintf("%-13s %s %5.1f%% (%d/%d)\n", c, Bar(pct), pct, t.Score, t.Max))
	}
	p.printBox("SCORES", strings.TrimSuffix(sb.String(), "\n"))

	p.printBox("AREAS FOR IMPROVEMENT", RenderMarkup(result.Summary))

	sb.Reset()
	if len(result.Strengths) == 0 {
		sb.WriteString(noStrengths)
	}
	for i, s := range result.Strengths {
		sb.WriteString(fmt.Sprintf("✅ %s\n", s.Topic))
		if s.Advice != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", s.Advice))
		}
		if i < len(result.Strengths)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("STRENGTHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the dimension vector and the matched profile.
func (p *Printer) PrintProfile(result *types.ProfileResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	v := result.Dimensions
	sb.WriteString(fmt.Sprintf("Physical:     %d\n", v.Physical))
	sb.WriteString(fmt.Sprintf("Mental:       %d\n", v.Mental))
	sb.WriteString(fmt.Sprintf("Social:       %d\n", v.Social))
	sb.WriteString(fmt.Sprintf("Intellectual: %d\n", v.Intellectual))
	sb.WriteString("\n")
	sb.WriteString(Bold(result.Profile.Description) + "\n")
	if result.Profile.Detail != "" {
		sb.WriteString(result.Profile.Detail + "\n")
	}
	if result.Profile.Recommendation != "" {
		sb.WriteString("\n→ " + result.Profile.Recommendation)
	}

	p.printBox("HOLISTIC PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutcome outputs a one-line persistence result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutcome(outcome *persistence.Outcome) {
	if outcome == nil {
		return
	}
	if outcome.Success {
		fmt.Fprintf(p.out, "%s %s\n", Green("✔"), outcome.Message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", Red("✘"), outcome.Message)
}

// Bar renders a percentage as a fixed-width bar.
func Bar(pct float64) string {
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// pad right-pads s with spaces to width runes, ignoring ANSI escapes.
func pad(s string, width int) string {
	n := visibleLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap splits a line into chunks of at most width visible runes, breaking on spaces.
func wrap(line string, width int) []string {
	if visibleLen(line) <= width {
		return []string{line}
	}

	var out []string
	var current strings.Builder
	indent := leadingSpaces(line)
	for _, word := range strings.Fields(line) {
		switch {
		case current.Len() == 0:
			current.WriteString(indent + word)
		case visibleLen(current.String())+1+visibleLen(word) > width:
			out = append(out, current.String())
			current.Reset()
			current.WriteString(indent + word)
		default:
			current.WriteString(" " + word)
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func leadingSpaces(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " "))]
}

// visibleLen counts runes outside ANSI escape sequences.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			n++
		}
	}
	return n
}
