package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/format"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/inference-directory/infdir/internal/tui/util"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

// ModelSelectedMsg opens the detail view of a record.
type ModelSelectedMsg struct {
	Record models.Record
}

type ResultsCmp interface {
	tea.Model
	SetRecords(records []models.Record)
	Records() []models.Record
	Cursor() int
	SetSize(width, height int)
}

type resultsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Open   key.Binding
}

var resultKeys = resultsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous model"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next model"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open model"),
	),
}

const (
	colProviders = 10
	colFigure    = 11
	colAuthor    = 14
)

type resultsCmp struct {
	records  []models.Record
	cursor   int
	viewport viewport.Model
	width    int
	height   int
}

func NewResultsCmp() ResultsCmp {
	return &resultsCmp{viewport: viewport.New(0, 0)}
}

func (m *resultsCmp) Init() tea.Cmd {
	return nil
}

func (m *resultsCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, resultKeys.Up):
			m.move(-1)
		case key.Matches(msg, resultKeys.Down):
			m.move(1)
		case key.Matches(msg, resultKeys.PgUp):
			m.move(-max(1, m.viewport.Height))
		case key.Matches(msg, resultKeys.PgDown):
			m.move(max(1, m.viewport.Height))
		case key.Matches(msg, resultKeys.Open):
			if len(m.records) > 0 {
				return m, util.CmdHandler(ModelSelectedMsg{Record: m.records[m.cursor]})
			}
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *resultsCmp) move(delta int) {
	if len(m.records) == 0 {
		return
	}
	m.cursor = util.Clamp(m.cursor+delta, 0, len(m.records)-1)
	m.render()
}

// SetRecords replaces the result list and moves the cursor to the top.
func (m *resultsCmp) SetRecords(records []models.Record) {
	m.records = records
	m.cursor = 0
	m.viewport.GotoTop()
	m.render()
}

func (m *resultsCmp) Records() []models.Record { return m.records }
func (m *resultsCmp) Cursor() int               { return m.cursor }

func (m *resultsCmp) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(0, height-1)
	m.render()
}

func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) >= width {
		s = truncate.StringWithTail(s, uint(width-1), "…")
	}
	return padding.String(s, uint(width))
}

func (m *resultsCmp) nameWidth() int {
	return max(12, m.width-colAuthor-colProviders-3*colFigure-2)
}

func (m *resultsCmp) header() string {
	t := theme.CurrentTheme()
	line := " " + cell("MODEL", m.nameWidth()) +
		cell("AUTHOR", colAuthor) +
		cell("PROVIDERS", colProviders) +
		cell("INPUT", colFigure) +
		cell("OUTPUT", colFigure) +
		cell("CONTEXT", colFigure)
	return styles.Bold().Foreground(t.TextMuted()).Render(line)
}

func (m *resultsCmp) row(i int, r models.Record) string {
	t := theme.CurrentTheme()
	author := r.Author
	if a, ok := catalog.LookupAuthor(r.Author); ok {
		author = a.Glyph + " " + author
	}
	line := " " + cell(r.Name, m.nameWidth()) +
		cell(author, colAuthor) +
		cell(strconv.Itoa(len(r.Offerings)), colProviders) +
		cell(format.Price(r.MedianInputCost), colFigure) +
		cell(format.Price(r.MedianOutputCost), colFigure) +
		cell(format.ContextWindow(r.MedianContext()), colFigure)

	style := styles.Regular().Foreground(t.Text())
	if i == m.cursor {
		style = style.Background(t.BackgroundSecondary()).Foreground(t.Primary()).Bold(true)
	}
	return style.Render(line)
}

func (m *resultsCmp) render() {
	if len(m.records) == 0 {
		m.viewport.SetContent(styles.Muted().Render(" No models match"))
		return
	}
	rows := make([]string, len(m.records))
	for i, r := range m.records {
		rows[i] = m.row(i, r)
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))

	// keep the cursor visible
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if h := m.viewport.Height; h > 0 && m.cursor >= m.viewport.YOffset+h {
		m.viewport.SetYOffset(m.cursor - h + 1)
	}
}

func (m *resultsCmp) View() string {
	return m.header() + "\n" + m.viewport.View()
}

// Summary is the one-line result count shown above the list.
func Summary(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("%d models", total)
	}
	return fmt.Sprintf("%d of %d models", shown, total)
}
