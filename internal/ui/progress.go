package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ufofmt/internal/driver"
)

const maxVisibleErrors = 5

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	total   int
	done    int
	failed  int
	errs    []string
	width   int
	stopped bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders live formatting
// progress for one run. A package may hold thousands of glyph files, so the
// view shows aggregate counts plus the most recent errors rather than one
// row per file.
func NewProgressModel(title string, total int, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		total:   total,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.stopped = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.stopped {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stopped {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	counts := fmt.Sprintf("  %d/%d files", m.done, m.total)
	if m.failed > 0 {
		counts += lipgloss.NewStyle().Foreground(lipgloss.Color("1")).
			Render(fmt.Sprintf("  %d failed", m.failed))
	}
	b.WriteString(counts)
	b.WriteString("\n")

	for _, e := range m.errs {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).
			Render("  " + truncate(e, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.stopped {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Status == driver.StatusError {
		m.failed++
		if ev.Err != nil {
			m.errs = append(m.errs, ev.Err.Error())
			if len(m.errs) > maxVisibleErrors {
				m.errs = m.errs[len(m.errs)-maxVisibleErrors:]
			}
		}
	}
	// Package path failures were never part of the pre-counted file total;
	// advancing the bar for them would overshoot it.
	if ev.PackageLevel {
		return nil
	}
	m.done++
	if m.total > 0 {
		return m.prog.SetPercent(float64(m.done) / float64(m.total))
	}
	return nil
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
