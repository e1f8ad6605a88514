package search

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/inference-directory/infdir/internal/tui/util"
	zone "github.com/lrstanley/bubblezone"
)

// ProvidersChangedMsg carries the selected provider ids in selection order.
type ProvidersChangedMsg struct {
	IDs []string
}

type ChipsCmp interface {
	tea.Model
	SetProviders(providers []catalog.Provider)
	Selected() []string
	Focus()
	Blur()
	Focused() bool
	SetWidth(width int)
}

type chipsKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Clear  key.Binding
}

var chipKeys = chipsKeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous provider"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next provider"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle provider"),
	),
	Clear: key.NewBinding(
		key.WithKeys("backspace", "x"),
		key.WithHelp("x", "clear providers"),
	),
}

const chipZonePrefix = "provider-chip:"

type chipsCmp struct {
	providers []catalog.Provider
	selected  []string
	cursor    int
	focused   bool
	width     int
}

func NewChipsCmp() ChipsCmp {
	return &chipsCmp{}
}

func (m *chipsCmp) Init() tea.Cmd {
	return nil
}

func (m *chipsCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i, p := range m.providers {
			if zone.Get(chipZonePrefix + p.ID).InBounds(msg) {
				m.cursor = i
				return m, m.toggle(p.ID)
			}
		}
	case tea.KeyMsg:
		if !m.focused || len(m.providers) == 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, chipKeys.Left):
			m.cursor = (m.cursor - 1 + len(m.providers)) % len(m.providers)
		case key.Matches(msg, chipKeys.Right):
			m.cursor = (m.cursor + 1) % len(m.providers)
		case key.Matches(msg, chipKeys.Toggle):
			return m, m.toggle(m.providers[m.cursor].ID)
		case key.Matches(msg, chipKeys.Clear):
			if len(m.selected) == 0 {
				return m, nil
			}
			m.selected = nil
			return m, m.changed()
		}
	}
	return m, nil
}

func (m *chipsCmp) toggle(id string) tea.Cmd {
	if i := slices.Index(m.selected, id); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
	} else {
		m.selected = append(m.selected, id)
	}
	return m.changed()
}

func (m *chipsCmp) changed() tea.Cmd {
	return util.CmdHandler(ProvidersChangedMsg{IDs: slices.Clone(m.selected)})
}

// SetProviders replaces the chip list. Selections of providers that are no
// longer listed are kept: the query engine treats them as matching nothing.
func (m *chipsCmp) SetProviders(providers []catalog.Provider) {
	m.providers = providers
	m.cursor = util.Clamp(m.cursor, 0, max(0, len(providers)-1))
}

func (m *chipsCmp) Selected() []string { return slices.Clone(m.selected) }

func (m *chipsCmp) Focus()        { m.focused = true }
func (m *chipsCmp) Blur()         { m.focused = false }
func (m *chipsCmp) Focused() bool { return m.focused }

func (m *chipsCmp) SetWidth(width int) { m.width = width }

func (m *chipsCmp) renderChip(i int, p catalog.Provider) string {
	t := theme.CurrentTheme()
	label := p.Name
	if p.Glyph != "" {
		label = p.Glyph + " " + label
	}

	style := styles.Padded().Foreground(t.TextMuted()).Background(t.BackgroundSecondary())
	if slices.Contains(m.selected, p.ID) {
		label = styles.CheckIcon + " " + label
		style = style.Foreground(t.Background()).Background(t.Primary()).Bold(true)
	}
	if m.focused && i == m.cursor {
		style = style.Underline(true)
	}
	return zone.Mark(chipZonePrefix+p.ID, style.Render(label))
}

func (m *chipsCmp) View() string {
	if len(m.providers) == 0 {
		return styles.Muted().Render("No providers loaded")
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i, p := range m.providers {
		chip := m.renderChip(i, p)
		w := lipgloss.Width(chip) + 1
		if m.width > 0 && lineWidth+w > m.width && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}
