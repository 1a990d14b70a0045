package summary

import (
	"fmt"

	"github.com/jonathan/health-check/internal/types"
)

// Tier is a severity bucket with a fixed colour and icon token.
type Tier struct {
	Name  string
	Color string
	Icon  string
}

var (
	TierHigh   = Tier{Name: "high", Color: "#D32F2F", Icon: "🔴"}
	TierMedium = Tier{Name: "medium", Color: "#F57C00", Icon: "🟠"}
	TierLow    = Tier{Name: "low", Color: "#388E3C", Icon: "🟢"}
)

// TierFor maps a severity weight to its tier.
func TierFor(severity int) Tier {
	switch {
	case severity >= 3:
		return TierHigh
	case severity == 2:
		return TierMedium
	default:
		return TierLow
	}
}

var categoryHeaders = map[types.Category]string{
	types.CategoryPhysical:     "💪 Physical health",
	types.CategoryMental:       "🧠 Mental health",
	types.CategorySocial:       "🤝 Social health",
	types.CategoryIntellectual: "📚 Intellectual health",
}

func header(c types.Category) string {
	if h, ok := categoryHeaders[c]; ok {
		return h
	}
	return string(c)
}

func bold(s string) string {
	return "<b>" + s + "</b>"
}

const lineBreak = "<br>"

func adviceLine(tier Tier, advice string) string {
	return fmt.Sprintf("<span style='color:%s'>%s %s</span>%s", tier.Color, tier.Icon, advice, lineBreak)
}
