// Package tui shows live sweep progress in the terminal. It is a pure
// observer of the pipeline: the worker pool pushes completion events
// in, nothing flows back except user cancellation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arvid-k/charsweep/internal/sweep"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	barDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	barLeft    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dim        = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

const barWidth = 40

// JobDoneMsg reports one completed sweep point.
type JobDoneMsg struct {
	Done  int
	Total int
	Point sweep.Point
}

// FinishedMsg ends the program; Err is nil on success.
type FinishedMsg struct {
	Err error
}

type Model struct {
	device string
	total  int
	done   int
	last   sweep.Point
	start  time.Time
	err    error
	closed bool
	cancel func()
}

// New builds the progress model. cancel is invoked when the user quits
// before the sweep finishes, so the pool can stop its workers.
func New(device string, total int, cancel func()) Model {
	return Model{device: device, total: total, start: time.Now(), cancel: cancel}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case JobDoneMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.last = msg.Point
		return m, nil
	case FinishedMsg:
		m.err = msg.Err
		m.closed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("charsweep: characterizing %s", m.device)))

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	filled := int(frac * barWidth)
	b.WriteString("  ")
	b.WriteString(barDone.Render(strings.Repeat("█", filled)))
	b.WriteString(barLeft.Render(strings.Repeat("░", barWidth-filled)))
	fmt.Fprintf(&b, "  %d/%d (%.0f%%)\n\n", m.done, m.total, frac*100)

	if m.done > 0 {
		elapsed := time.Since(m.start)
		fmt.Fprintf(&b, "  %s\n", dim.Render(fmt.Sprintf("last: W=%.3g L=%.3g Vbs=%.2f", m.last.W, m.last.L, m.last.Vbs)))
		fmt.Fprintf(&b, "  %s\n", dim.Render(fmt.Sprintf("elapsed: %s  eta: %s", elapsed.Round(time.Second), m.eta(elapsed))))
	}

	if m.closed && m.err != nil {
		fmt.Fprintf(&b, "\n  %s\n", errStyle.Render(m.err.Error()))
	}
	b.WriteString("\n  " + dim.Render("q to abort") + "\n")
	return b.String()
}

func (m Model) eta(elapsed time.Duration) string {
	if m.done == 0 || m.done >= m.total {
		return "-"
	}
	perJob := elapsed / time.Duration(m.done)
	return (perJob * time.Duration(m.total-m.done)).Round(time.Second).String()
}

// Observe adapts a running tea.Program into a pool observer.
func Observe(p *tea.Program) func(done, total int, pt sweep.Point) {
	return func(done, total int, pt sweep.Point) {
		p.Send(JobDoneMsg{Done: done, Total: total, Point: pt})
	}
}
