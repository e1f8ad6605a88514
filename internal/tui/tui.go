package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/app"
	"github.com/inference-directory/infdir/internal/config"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/tui/components/core"
	"github.com/inference-directory/infdir/internal/tui/components/search"
	"github.com/inference-directory/infdir/internal/tui/page"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/inference-directory/infdir/internal/tui/util"
	zone "github.com/lrstanley/bubblezone"
)

type keyMap struct {
	Quit        key.Binding
	Help        key.Binding
	SwitchTheme key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "toggle help"),
	),
	SwitchTheme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch theme"),
	),
}

type bindingKeys interface {
	BindingKeys() []key.Binding
}

type appModel struct {
	width, height int
	currentPage   page.PageID
	pages         map[page.PageID]tea.Model
	status        core.StatusCmp
	app           *app.App
	showHelp      bool
}

func (a appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, a.pages[a.currentPage].Init())
	cmds = append(cmds, a.status.Init())
	return tea.Batch(cmds...)
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height

		s, _ := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		pageMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - lipgloss.Height(a.status.View())}
		a.pages[a.currentPage], cmd = a.pages[a.currentPage].Update(pageMsg)
		return a, cmd

	case util.InfoMsg, util.ClearStatusMsg:
		s, cmd := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		return a, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			return a, nil
		case key.Matches(msg, keys.SwitchTheme):
			return a, a.switchTheme()
		}
	}

	s, cmd := a.status.Update(msg)
	a.status = s.(core.StatusCmp)
	cmds = append(cmds, cmd)

	a.pages[a.currentPage], cmd = a.pages[a.currentPage].Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a appModel) switchTheme() tea.Cmd {
	next := theme.NextTheme()
	if err := theme.SetTheme(next); err != nil {
		return util.ReportError(err)
	}
	if config.Get() != nil {
		if err := config.UpdateTheme(next); err != nil {
			logging.Warn("Failed to persist theme", "theme", next, "error", err)
		}
	}
	return util.ReportInfo("Theme: " + next)
}

func (a appModel) helpBindings() []key.Binding {
	bindings := []key.Binding{keys.Quit, keys.Help, keys.SwitchTheme}
	if p, ok := a.pages[a.currentPage].(bindingKeys); ok {
		bindings = append(bindings, p.BindingKeys()...)
	}
	return append(bindings, search.KeyBindings()...)
}

func (a appModel) View() string {
	body := a.pages[a.currentPage].View()
	if a.showHelp {
		body = lipgloss.Place(a.width, max(0, a.height-1), lipgloss.Center, lipgloss.Center, core.RenderHelp(a.helpBindings()))
	}
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, body, a.status.View()))
}

// New creates the root model. The search page is the only page.
func New(app *app.App) tea.Model {
	debounce := config.SearchConfig{DebounceMs: config.DefaultDebounceMs}.Debounce()
	if cfg := config.Get(); cfg != nil {
		debounce = cfg.Search.Debounce()
	}
	return &appModel{
		currentPage: page.SearchPage,
		status:      core.NewStatusCmp(),
		app:         app,
		pages: map[page.PageID]tea.Model{
			page.SearchPage: page.NewSearchPage(app, debounce),
		},
	}
}
