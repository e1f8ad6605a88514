package core

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/muesli/reflow/padding"
)

// RenderHelp lays out key bindings as a two-column table.
func RenderHelp(bindings []key.Binding) string {
	t := theme.CurrentTheme()
	keyWidth := 0
	for _, b := range bindings {
		keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
	}

	var lines []string
	seen := map[string]bool{}
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" || seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		lines = append(lines,
			styles.Bold().Foreground(t.Primary()).Render(padding.String(h.Key, uint(keyWidth+2)))+
				styles.Regular().Foreground(t.Text()).Render(h.Desc))
	}

	return styles.FocusedBorder().
		Padding(0, 1).
		Render(styles.Bold().Render("Keys") + "\n\n" + strings.Join(lines, "\n"))
}
