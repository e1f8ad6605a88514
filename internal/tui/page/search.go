package page

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/app"
	"github.com/inference-directory/infdir/internal/dataset"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/pubsub"
	"github.com/inference-directory/infdir/internal/tui/components/search"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/util"
)

var SearchPage PageID = "search"

// RefreshedMsg reports the end of a dataset refresh.
type RefreshedMsg struct {
	Snapshot dataset.Snapshot
	Err      error
}

type SearchKeyMap struct {
	Refresh    key.Binding
	SwitchPane key.Binding
}

var keyMap = SearchKeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "refresh dataset"),
	),
	SwitchPane: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "search / providers"),
	),
}

type searchPage struct {
	app     *app.App
	input   search.InputCmp
	chips   search.ChipsCmp
	results search.ResultsCmp
	detail  search.DetailCmp
	spinner spinner.Model

	text       string
	providers  []string
	showDetail bool
	loading    bool
	width      int
	height     int
}

func NewSearchPage(a *app.App, debounce time.Duration) tea.Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &searchPage{
		app:     a,
		input:   search.NewInputCmp(debounce),
		chips:   search.NewChipsCmp(),
		results: search.NewResultsCmp(),
		detail:  search.NewDetailCmp(a.CardFigures),
		spinner: s,
		loading: true,
	}
}

func (p *searchPage) Init() tea.Cmd {
	return tea.Batch(
		p.input.Init(),
		p.spinner.Tick,
		p.refresh(),
	)
}

func (p *searchPage) refresh() tea.Cmd {
	a := p.app
	return func() tea.Msg {
		snap, err := a.Refresh(context.Background())
		return RefreshedMsg{Snapshot: snap, Err: err}
	}
}

// runQuery re-evaluates the current text and provider selection against
// the current snapshot.
func (p *searchPage) runQuery() {
	p.results.SetRecords(p.app.Query(p.text, p.providers))
}

func (p *searchPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case RefreshedMsg:
		p.loading = false
		if msg.Err != nil {
			logging.Error("Dataset refresh failed", "error", msg.Err)
			return p, util.ReportError(msg.Err)
		}
		p.onSnapshot()
		return p, util.ReportInfo(search.Summary(len(msg.Snapshot.Records), len(msg.Snapshot.Records)) + " loaded")

	case pubsub.Event[dataset.Snapshot]:
		// a refresh started elsewhere, e.g. from the CLI, landed
		p.onSnapshot()
		return p, nil

	case search.QueryChangedMsg:
		p.text = msg.Text
		p.runQuery()
		return p, nil

	case search.ProvidersChangedMsg:
		p.providers = msg.IDs
		p.runQuery()
		return p, nil

	case search.ModelSelectedMsg:
		p.showDetail = true
		p.detail.SetRecord(msg.Record, p.providers)
		return p, nil

	case search.DetailClosedMsg:
		p.showDetail = false
		return p, nil

	case tea.MouseMsg:
		_, cmd := p.chips.Update(msg)
		cmds = append(cmds, cmd)
		if p.showDetail {
			_, cmd = p.detail.Update(msg)
		} else {
			_, cmd = p.results.Update(msg)
		}
		cmds = append(cmds, cmd)
		return p, tea.Batch(cmds...)

	case tea.KeyMsg:
		if key.Matches(msg, keyMap.Refresh) {
			if p.loading {
				return p, nil
			}
			p.loading = true
			return p, tea.Batch(p.spinner.Tick, p.refresh())
		}
		if p.showDetail {
			_, cmd := p.detail.Update(msg)
			return p, cmd
		}
		if key.Matches(msg, keyMap.SwitchPane) {
			if p.input.Focused() {
				p.input.Blur()
				p.chips.Focus()
				return p, nil
			}
			p.chips.Blur()
			return p, p.input.Focus()
		}
		if p.chips.Focused() {
			_, cmd := p.chips.Update(msg)
			return p, cmd
		}
		_, cmd := p.results.Update(msg)
		cmds = append(cmds, cmd)
		_, cmd = p.input.Update(msg)
		cmds = append(cmds, cmd)
		return p, tea.Batch(cmds...)
	}

	_, cmd := p.input.Update(msg)
	return p, cmd
}

func (p *searchPage) onSnapshot() {
	p.chips.SetProviders(p.app.Providers())
	p.runQuery()
	if p.showDetail {
		if r, ok := p.app.FindModel(p.detail.Record().Slug()); ok {
			p.detail.SetRecord(r, p.providers)
		}
	}
	p.relayout()
}

func (p *searchPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.relayout()
}

func (p *searchPage) relayout() {
	p.input.SetWidth(p.width)
	p.chips.SetWidth(p.width)
	used := lipgloss.Height(p.input.View()) + lipgloss.Height(p.chips.View()) + 2
	p.results.SetSize(p.width, max(0, p.height-used))
	p.detail.SetSize(p.width, max(0, p.height-used))
}

func (p *searchPage) View() string {
	header := p.input.View()
	if p.loading {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, " ", p.spinner.View(), styles.Muted().Render(" loading dataset"))
	}

	body := p.results.View()
	summary := search.Summary(len(p.results.Records()), len(p.app.Dataset.Current().Records))
	if p.showDetail {
		body = p.detail.View()
		summary = "esc back · s sort · r reverse"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		p.chips.View(),
		styles.Muted().Render(summary),
		body,
	)
}

func (p *searchPage) BindingKeys() []key.Binding {
	return []key.Binding{keyMap.Refresh, keyMap.SwitchPane}
}
