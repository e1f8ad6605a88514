package format

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Spinner wraps the bubbles spinner for non-interactive mode
type Spinner struct {
	model  spinner.Model
	done   chan struct{}
	prog   *tea.Program
	ctx    context.Context
	cancel context.CancelFunc
}

// spinnerModel is the tea.Model for the spinner
type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// quitMsg is sent when we want to quit the spinner
type quitMsg struct{}

// NewSpinner creates a new spinner with the given message, drawn on stderr
func NewSpinner(message string) *Spinner {
	return newSpinner(message, os.Stderr)
}

func newSpinner(message string, out io.Writer) *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot

	model := spinnerModel{
		spinner: s,
		message: message,
	}

	ctx, cancel := context.WithCancel(context.Background())

	prog := tea.NewProgram(model,
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutCatchPanics(),
		tea.WithContext(ctx),
	)

	return &Spinner{
		model:  s,
		done:   make(chan struct{}),
		prog:   prog,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		_, _ = s.prog.Run()
	}()
}

// Stop ends the spinner animation
func (s *Spinner) Stop() {
	s.prog.Send(quitMsg{})
	s.cancel()
	<-s.done
}
