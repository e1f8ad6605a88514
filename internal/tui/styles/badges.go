package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/lucasb-eyer/go-colorful"
)

// badgeTint is how far a badge background moves from the status colour
// toward the theme background.
const badgeTint = 0.7

// Blend mixes two hex colours in Lab space. Unparseable input returns a.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

func blendAdaptive(a, b lipgloss.AdaptiveColor, t float64) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  Blend(a.Dark, b.Dark, t),
		Light: Blend(a.Light, b.Light, t),
	}
}

// GoodnessColor is the status colour used for a reading.
func GoodnessColor(g compare.Goodness) (lipgloss.AdaptiveColor, bool) {
	t := theme.CurrentTheme()
	switch g {
	case compare.Good:
		return t.Success(), true
	case compare.Fair:
		return t.Warning(), true
	case compare.Poor:
		return t.Error(), true
	default:
		return lipgloss.AdaptiveColor{}, false
	}
}

// GoodnessIcon is the marker drawn next to a classified figure.
func GoodnessIcon(g compare.Goodness) string {
	switch g {
	case compare.Good:
		return GoodIcon
	case compare.Fair:
		return FairIcon
	case compare.Poor:
		return PoorIcon
	default:
		return ""
	}
}

// Badge renders a figure with its classification: the icon in the status
// colour on a tinted background. Neutral figures render plainly.
func Badge(figure string, b compare.Bucket, dir compare.Direction) string {
	g := compare.GoodnessOf(b, dir)
	fg, ok := GoodnessColor(g)
	if !ok {
		return Padded().Render(figure)
	}
	bg := blendAdaptive(fg, theme.CurrentTheme().Background(), badgeTint)
	return Padded().
		Foreground(fg).
		Background(bg).
		Render(figure + " " + GoodnessIcon(g))
}
