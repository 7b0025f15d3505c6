// Package tui provides a Bubble Tea terminal user interface for bing-wallpaper-downloader.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9933FF")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AA55FF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9933FF")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
)

// Starter launches a batch run and hands back its progress and result
// channels. *download.Runner satisfies it.
type Starter interface {
	Start(ctx context.Context, spec string) (<-chan int, <-chan string)
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model

	starter   Starter
	outputDir string
	ctx       context.Context

	percent int
	result  string

	width int
}

// NewModel creates a new TUI model that starts runs through starter.
func NewModel(ctx context.Context, starter Starter, outputDir string) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. 0 or 0,3"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#9933FF"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		starter:   starter,
		outputDir: outputDir,
		ctx:       ctx,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one progress value and the channels to keep listening on.
	ProgressMsg struct {
		Percent  int
		progress <-chan int
		result   <-chan string
	}

	// ResultMsg carries the terminal result of a run.
	ResultMsg struct {
		Text string
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// A running batch cannot be cancelled; only quit from idle states.
			if m.state != StateRunning {
				return m, tea.Quit
			}

		case "enter":
			if m.state == StateInput {
				m.state = StateRunning
				m.percent = 0
				m.result = ""
				progressCh, resultCh := m.starter.Start(m.ctx, m.textInput.Value())
				return m, tea.Batch(waitForProgress(progressCh, resultCh), m.spinner.Tick, m.progress.SetPercent(0))
			}

		case "r":
			if m.state == StateComplete {
				m.state = StateInput
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, textinput.Blink
			}

		case "q":
			if m.state == StateComplete {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.percent = msg.Percent
		cmds = append(cmds,
			m.progress.SetPercent(float64(msg.Percent)/100),
			waitForProgress(msg.progress, msg.result),
		)

	case ResultMsg:
		m.state = StateComplete
		m.result = msg.Text

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// waitForProgress blocks on the next progress value; once the progress
// channel is closed it waits for the result instead.
func waitForProgress(progressCh <-chan int, resultCh <-chan string) tea.Cmd {
	return func() tea.Msg {
		if p, ok := <-progressCh; ok {
			return ProgressMsg{Percent: p, progress: progressCh, result: resultCh}
		}
		return ResultMsg{Text: <-resultCh}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bing Wallpaper Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Save the daily Bing image with its title and copyright"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Day to download, 0-7 (0 is today); a range as start,end:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Saving to: %s", m.outputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Downloading... %d%%", m.percent)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	b.WriteString(m.progress.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n\n")

	if strings.HasPrefix(m.result, "execution error") {
		b.WriteString(errorStyle.Render(m.result))
	} else {
		b.WriteString(boxStyle.Render(m.result))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • esc: quit"
	case StateRunning:
		return "ctrl+c: quit"
	case StateComplete:
		return "r: new download • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(ctx context.Context, starter Starter, outputDir string) error {
	p := tea.NewProgram(NewModel(ctx, starter, outputDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
