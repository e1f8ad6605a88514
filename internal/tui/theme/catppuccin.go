package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// CatppuccinTheme implements the Theme interface with Catppuccin colors.
type CatppuccinTheme struct {
	BaseTheme
}

func adaptive(dark, light catppuccin.Color) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark.Hex, Light: light.Hex}
}

// NewCatppuccinTheme creates a theme that uses dark for dark terminal
// backgrounds and light otherwise. Passing the same flavor twice pins it.
func NewCatppuccinTheme(dark, light catppuccin.Flavor) *CatppuccinTheme {
	theme := &CatppuccinTheme{}

	theme.PrimaryColor = adaptive(dark.Blue(), light.Blue())
	theme.SecondaryColor = adaptive(dark.Mauve(), light.Mauve())
	theme.AccentColor = adaptive(dark.Peach(), light.Peach())

	theme.ErrorColor = adaptive(dark.Red(), light.Red())
	theme.WarningColor = adaptive(dark.Yellow(), light.Yellow())
	theme.SuccessColor = adaptive(dark.Green(), light.Green())
	theme.InfoColor = adaptive(dark.Sky(), light.Sky())

	theme.TextColor = adaptive(dark.Text(), light.Text())
	theme.TextMutedColor = adaptive(dark.Subtext0(), light.Subtext0())
	theme.TextEmphasizedColor = adaptive(dark.Lavender(), light.Lavender())

	theme.BackgroundColor = adaptive(dark.Base(), light.Base())
	theme.BackgroundSecondaryColor = adaptive(dark.Mantle(), light.Mantle())
	theme.BackgroundDarkerColor = adaptive(dark.Crust(), light.Crust())

	theme.BorderNormalColor = adaptive(dark.Surface1(), light.Surface1())
	theme.BorderFocusedColor = adaptive(dark.Blue(), light.Blue())
	theme.BorderDimColor = adaptive(dark.Surface0(), light.Surface0())

	return theme
}

func init() {
	RegisterTheme("catppuccin", NewCatppuccinTheme(catppuccin.Mocha, catppuccin.Latte))
	RegisterTheme("catppuccin-mocha", NewCatppuccinTheme(catppuccin.Mocha, catppuccin.Mocha))
	RegisterTheme("catppuccin-macchiato", NewCatppuccinTheme(catppuccin.Macchiato, catppuccin.Macchiato))
	RegisterTheme("catppuccin-frappe", NewCatppuccinTheme(catppuccin.Frappe, catppuccin.Frappe))
	RegisterTheme("catppuccin-latte", NewCatppuccinTheme(catppuccin.Latte, catppuccin.Latte))
}
