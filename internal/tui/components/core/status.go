package core

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inference-directory/infdir/internal/dataset"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/pubsub"
	"github.com/inference-directory/infdir/internal/tui/styles"
	"github.com/inference-directory/infdir/internal/tui/theme"
	"github.com/inference-directory/infdir/internal/tui/util"
	"github.com/muesli/reflow/truncate"
)

type StatusCmp interface {
	tea.Model
}

type statusCmp struct {
	info       util.InfoMsg
	width      int
	messageTTL time.Duration
	snapshot   dataset.Snapshot
}

// clearMessageCmd is a command that clears status messages after a timeout
func (m statusCmp) clearMessageCmd(ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return util.ClearStatusMsg{}
	})
}

func (m statusCmp) Init() tea.Cmd {
	return nil
}

func (m statusCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case pubsub.Event[dataset.Snapshot]:
		m.snapshot = msg.Payload
	case pubsub.Event[logging.LogMessage]:
		// surface warnings and errors that did not come with their own report
		switch msg.Payload.Level {
		case "warn":
			m.info = util.InfoMsg{Type: util.InfoTypeWarn, Msg: msg.Payload.Message}
			return m, m.clearMessageCmd(m.messageTTL)
		case "error":
			m.info = util.InfoMsg{Type: util.InfoTypeError, Msg: msg.Payload.Message}
			return m, m.clearMessageCmd(m.messageTTL)
		}
	case util.InfoMsg:
		m.info = msg
		ttl := msg.TTL
		if ttl == 0 {
			ttl = m.messageTTL
		}
		return m, m.clearMessageCmd(ttl)
	case util.ClearStatusMsg:
		m.info = util.InfoMsg{}
	}
	return m, nil
}

// getHelpWidget returns the help widget with current theme colors
func getHelpWidget() string {
	t := theme.CurrentTheme()
	return styles.Padded().
		Background(t.TextMuted()).
		Foreground(t.BackgroundDarker()).
		Bold(true).
		Render("ctrl+h help")
}

func (m statusCmp) renderSnapshotWidget() string {
	t := theme.CurrentTheme()
	text := "no data"
	if !m.snapshot.Empty() {
		text = fmt.Sprintf("%d models · %s", len(m.snapshot.Records), m.snapshot.FetchedAt.Format("15:04"))
	}
	return styles.Padded().
		Background(t.Secondary()).
		Foreground(t.Background()).
		Render(text)
}

func (m statusCmp) View() string {
	t := theme.CurrentTheme()
	help := getHelpWidget()
	snapshot := m.renderSnapshotWidget()

	availableWidth := max(0, m.width-lipgloss.Width(help)-lipgloss.Width(snapshot))

	status := help
	if m.info.Msg != "" {
		infoStyle := styles.Padded().
			Foreground(t.Background()).
			Width(availableWidth)

		switch m.info.Type {
		case util.InfoTypeInfo:
			infoStyle = infoStyle.Background(t.Info())
		case util.InfoTypeWarn:
			infoStyle = infoStyle.Background(t.Warning())
		case util.InfoTypeError:
			infoStyle = infoStyle.Background(t.Error())
		}

		msg := m.info.Msg
		if infoWidth := availableWidth - 2; infoWidth > 0 {
			msg = truncate.StringWithTail(msg, uint(infoWidth), "...")
		}
		status += infoStyle.Render(msg)
	} else {
		status += styles.Padded().
			Foreground(t.Text()).
			Background(t.BackgroundSecondary()).
			Width(availableWidth).
			Render("")
	}

	status += snapshot
	return status
}

func NewStatusCmp() StatusCmp {
	return &statusCmp{
		messageTTL: 10 * time.Second,
	}
}
