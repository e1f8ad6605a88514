package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/format"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/inference-directory/infdir/internal/tui/util"
)

// DetailClosedMsg returns from the detail view to the result list.
type DetailClosedMsg struct{}

// FiguresFunc resolves the headline figures of a record for a provider id.
type FiguresFunc func(r models.Record, providerID string) models.Figures

type DetailCmp interface {
	tea.Model
	SetRecord(r models.Record, providerIDs []string)
	Record() models.Record
	SortKey() models.SortKey
	SetSize(width, height int)
}

type detailKeyMap struct {
	Close   key.Binding
	Sort    key.Binding
	Reverse key.Binding
}

var detailKeys = detailKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back to results"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cycle sort column"),
	),
	Reverse: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reverse sort"),
	),
}

var sortCycle = []models.SortKey{
	models.SortNone,
	models.SortName,
	models.SortInput,
	models.SortOutput,
	models.SortContext,
	models.SortThroughput,
}

type detailCmp struct {
	record      models.Record
	providerIDs []string
	figures     FiguresFunc
	sortKey     models.SortKey
	sortDir     models.SortDirection
	viewport    viewport.Model
	width       int
}

func NewDetailCmp(figures FiguresFunc) DetailCmp {
	return &detailCmp{
		figures:  figures,
		sortDir:  models.SortAsc,
		viewport: viewport.New(0, 0),
	}
}

func (m *detailCmp) Init() tea.Cmd {
	return nil
}

func (m *detailCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, detailKeys.Close):
			return m, util.CmdHandler(DetailClosedMsg{})
		case key.Matches(msg, detailKeys.Sort):
			i := 0
			for j, k := range sortCycle {
				if k == m.sortKey {
					i = j
				}
			}
			m.sortKey = sortCycle[(i+1)%len(sortCycle)]
			m.render()
			return m, nil
		case key.Matches(msg, detailKeys.Reverse):
			if m.sortDir == models.SortAsc {
				m.sortDir = models.SortDesc
			} else {
				m.sortDir = models.SortAsc
			}
			m.render()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetRecord shows r. The headline figures follow the first selected
// provider that offers the model.
func (m *detailCmp) SetRecord(r models.Record, providerIDs []string) {
	m.record = r
	m.providerIDs = providerIDs
	m.viewport.GotoTop()
	m.render()
}

func (m *detailCmp) Record() models.Record  { return m.record }
func (m *detailCmp) SortKey() models.SortKey { return m.sortKey }

func (m *detailCmp) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *detailCmp) headline() models.Figures {
	if m.figures == nil {
		return models.Figures{}
	}
	for _, id := range m.providerIDs {
		if fig := m.figures(m.record, id); fig.Provider != "" {
			return fig
		}
	}
	return m.figures(m.record, "")
}

func (m *detailCmp) render() {
	t := theme.CurrentTheme()
	r := m.record
	var b strings.Builder

	title := r.Name
	if a, ok := catalog.LookupAuthor(r.Author); ok {
		title = a.Glyph + " " + title
	}
	b.WriteString(styles.Bold().Foreground(t.Primary()).Render(title))
	if r.Author != "" {
		b.WriteString(styles.Muted().Render("  by " + r.Author))
	}
	if r.IsOpenWeights {
		b.WriteString(styles.Padded().Foreground(t.Success()).Render("open weights"))
	}
	b.WriteString("\n")
	if r.OpenRouterID != "" {
		b.WriteString(styles.Muted().Render(r.OpenRouterID))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fig := m.headline()
	scope := "Median across providers"
	if fig.Provider != "" {
		scope = "Showing specs for " + fig.Provider
	}
	b.WriteString(styles.Muted().Render(scope))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Input %s/M   Output %s/M   Context %s   %s tok/s\n\n",
		format.Price(fig.Input), format.Price(fig.Output),
		format.ContextWindow(fig.Context), format.Throughput(fig.Throughput)))

	sortLabel := "dataset order"
	if m.sortKey != models.SortNone {
		sortLabel = fmt.Sprintf("%s %s", m.sortKey, m.sortDir)
	}
	b.WriteString(styles.Bold().Render(fmt.Sprintf("Providers (%d)", len(r.Offerings))))
	b.WriteString(styles.Muted().Render("  sorted by " + sortLabel))
	b.WriteString("\n")

	b.WriteString(styles.Bold().Foreground(t.TextMuted()).Render(
		cell("PROVIDER", 20) + cell("INPUT", 14) + cell("OUTPUT", 14) +
			cell("CONTEXT", 10) + cell("LATENCY", 10) + cell("TOK/S", 12)))
	b.WriteString("\n")

	for _, o := range models.SortOfferings(r.Offerings, m.sortKey, m.sortDir) {
		input := compare.ClassifyField(o, r.Offerings, models.FieldInput)
		output := compare.ClassifyField(o, r.Offerings, models.FieldOutput)
		tps := compare.ClassifyField(o, r.Offerings, models.FieldThroughput)

		b.WriteString(cell(o.Provider, 20))
		b.WriteString(cell(styles.Badge(format.Price(o.Input), input, compare.LowerIsBetter), 14))
		b.WriteString(cell(styles.Badge(format.Price(o.Output), output, compare.LowerIsBetter), 14))
		b.WriteString(cell(format.ContextWindow(o.Context.Float()), 10))
		b.WriteString(cell(format.Latency(o.Latency), 10))
		b.WriteString(cell(styles.Badge(format.Throughput(o.Throughput), tps, compare.HigherIsBetter), 12))
		b.WriteString("\n")
	}
	if len(r.Offerings) == 0 {
		b.WriteString(styles.Muted().Render("No providers listed"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted().Render(fmt.Sprintf("%s better than most  %s typical  %s worse than most",
		styles.GoodIcon, styles.FairIcon, styles.PoorIcon)))

	m.viewport.SetContent(b.String())
}

func (m *detailCmp) View() string {
	return m.viewport.View()
}
