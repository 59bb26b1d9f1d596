package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/HidekiAI/hairev-utils/internal/fib"
)

type searchModel struct {
	title   string
	target  int
	events  <-chan fib.Event
	spinner spinner.Model
	prog    progress.Model
	last    fib.Event
	width   int
	done    bool
	// interrupted is set when the user quits before the search ends.
	interrupted bool
}

type eventMsg fib.Event
type doneMsg struct{}

// NewSearchModel returns a Bubble Tea model that renders the progress of a
// digit search fed through events. The program quits when events closes.
func NewSearchModel(title string, target int, events <-chan fib.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &searchModel{
		title:   title,
		target:  target,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

// Interrupted reports whether a model returned by NewSearchModel was quit
// with ctrl-c before its search finished.
func Interrupted(m tea.Model) bool {
	sm, ok := m.(*searchModel)
	return ok && sm.interrupted
}

func (m *searchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(fib.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = !m.done
			return m, tea.Quit
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *searchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := truncate(m.title, m.width-4)
	switch {
	case m.done && m.last.Err != nil:
		header = "failed: " + header
	case m.done:
		header = "done: " + header
	default:
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	status := statusLine(m.last, m.target)
	b.WriteString("  ")
	b.WriteString(styleStatus(m.last, m.done).Render(truncate(status, m.width-2)))
	b.WriteString("\n\n")

	if m.done && m.last.Err == nil {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *searchModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *searchModel) applyEvent(ev fib.Event) tea.Cmd {
	m.last = ev
	return m.prog.SetPercent(fraction(ev.Digits, m.target))
}

func fraction(digits, target int) float64 {
	if target <= 0 {
		return 0
	}
	return min(float64(digits)/float64(target), 1)
}

func statusLine(ev fib.Event, target int) string {
	if ev.Err != nil {
		return "error: " + ev.Err.Error()
	}
	return fmt.Sprintf("index %d  %d/%d digits  %s", ev.Index, ev.Digits, target, ev.Elapsed.Round(time.Millisecond))
}

func styleStatus(ev fib.Event, done bool) lipgloss.Style {
	switch {
	case ev.Err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case done || ev.Done:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
