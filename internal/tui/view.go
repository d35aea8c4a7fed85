package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
)

// View renders the title, the grid and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render(m.title)
	sections := []string{title, m.status(), m.viewport.View(), m.help.View(m.keys)}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) status() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}

	g := m.board.Grid()
	state := g.Layout()
	opts := g.Options()
	direction := "ltr"
	if opts.RTL {
		direction = "rtl"
	}
	orientation := "vertical"
	if opts.Horizontal {
		orientation = "horizontal"
	}
	return statusStyle.Render(fmt.Sprintf("%d cards · %d columns · %s · %s · pass %d · %s",
		len(m.board.Keys()), state.Result.ColumnCount, orientation, direction,
		state.Pass, scheduler.NameOf(m.board.Scheduler())))
}
