package observability

import (
	"regexp"
	"strings"

	"github.com/fatih/color"

	"github.com/jonathan/health-check/internal/summary"
)

var (
	Green = color.New(color.FgGreen).SprintFunc()
	Red   = color.New(color.FgRed).SprintFunc()
	Bold  = color.New(color.Bold).SprintFunc()

	orange = color.New(color.FgYellow).SprintFunc()

	tierColors = map[string]func(a ...interface{}) string{
		summary.TierHigh.Color:   Red,
		summary.TierMedium.Color: orange,
		summary.TierLow.Color:    Green,
	}

	spanPattern = regexp.MustCompile(`<span style='color:(#[0-9A-Fa-f]{6})'>(.*?)</span>`)
	boldPattern = regexp.MustCompile(`<b>(.*?)</b>`)
)

// RenderMarkup converts summary markup into terminal text: bold spans become bold,
// coloured spans take the nearest terminal colour and line breaks become newlines.
func RenderMarkup(markup string) string {
	out := spanPattern.ReplaceAllStringFunc(markup, func(m string) string {
		parts := spanPattern.FindStringSubmatch(m)
		if paint, ok := tierColors[strings.ToUpper(parts[1])]; ok {
			return "  " + paint(parts[2])
		}
		return "  " + parts[2]
	})
	out = boldPattern.ReplaceAllStringFunc(out, func(m string) string {
		return Bold(boldPattern.FindStringSubmatch(m)[1])
	})
	return strings.ReplaceAll(out, "<br>", "\n")
}
