package search

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/inference-directory/infdir/internal/tui/util"
)

// QueryChangedMsg is sent once typing has paused for the debounce period.
type QueryChangedMsg struct {
	Text string
}

// debounceMsg carries the sequence number of the keystroke that scheduled
// it; only the latest keystroke's tick dispatches a query.
type debounceMsg struct {
	seq  int
	text string
}

type InputCmp interface {
	tea.Model
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	SetWidth(width int)
}

type inputCmp struct {
	textinput  textinput.Model
	debounce   time.Duration
	seq        int
	dispatched string
	width      int
}

func NewInputCmp(debounce time.Duration) InputCmp {
	ti := textinput.New()
	ti.Placeholder = "Search models, authors or providers"
	ti.Prompt = styles.SearchIcon + " "
	ti.CharLimit = 120
	ti.Focus()
	return &inputCmp{
		textinput: ti,
		debounce:  debounce,
	}
}

func (m *inputCmp) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.dispatch(msg.text)
	}

	before := m.textinput.Value()
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	after := m.textinput.Value()
	if after == before {
		return m, cmd
	}

	m.seq++
	if m.debounce <= 0 {
		return m, tea.Batch(cmd, m.dispatch(after))
	}
	seq := m.seq
	tick := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, text: after}
	})
	return m, tea.Batch(cmd, tick)
}

// dispatch emits the query unless the normalized text was already sent.
func (m *inputCmp) dispatch(text string) tea.Cmd {
	normalized := strings.TrimSpace(text)
	if normalized == m.dispatched {
		return nil
	}
	m.dispatched = normalized
	return util.CmdHandler(QueryChangedMsg{Text: normalized})
}

func (m *inputCmp) View() string {
	t := theme.CurrentTheme()
	m.textinput.PromptStyle = lipgloss.NewStyle().Foreground(t.Primary())
	m.textinput.TextStyle = lipgloss.NewStyle().Foreground(t.Text())
	m.textinput.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.TextMuted())

	border := styles.Border()
	if m.textinput.Focused() {
		border = styles.FocusedBorder()
	}
	if m.width > 2 {
		border = border.Width(m.width - 2)
	}
	return border.Render(m.textinput.View())
}

func (m *inputCmp) Focus() tea.Cmd { return m.textinput.Focus() }
func (m *inputCmp) Blur()          { m.textinput.Blur() }
func (m *inputCmp) Focused() bool  { return m.textinput.Focused() }
func (m *inputCmp) Value() string  { return m.textinput.Value() }

func (m *inputCmp) SetWidth(width int) {
	m.width = width
	m.textinput.Width = max(0, width-6)
}

// KeyBindings lists the bindings of the search components for the help view.
func KeyBindings() []key.Binding {
	return []key.Binding{
		resultKeys.Up, resultKeys.Down, resultKeys.PgUp, resultKeys.PgDown, resultKeys.Open,
		chipKeys.Left, chipKeys.Right, chipKeys.Toggle, chipKeys.Clear,
		detailKeys.Close, detailKeys.Sort, detailKeys.Reverse,
	}
}
