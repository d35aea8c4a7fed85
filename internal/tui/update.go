package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if !m.mounted {
			if err := m.board.Mount(); err != nil {
				m.err = err
				return m, nil
			}
			m.mounted = true
		}
		m.refresh()
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		m.board.Step(time.Time(msg))
		m.refresh()
		return m, frame()

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			m.refresh()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.mounted {
			m.board.Grid().Unmount()
		}
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	case key.Matches(msg, m.keys.Add):
		_, m.err = m.board.AddRandom()
	case key.Matches(msg, m.keys.Remove):
		_, m.err = m.board.RemoveLast()
	case key.Matches(msg, m.keys.Shuffle):
		m.err = m.board.Shuffle()
	case key.Matches(msg, m.keys.RTL):
		m.err = m.board.ToggleRTL()
	case key.Matches(msg, m.keys.Orientation):
		m.err = m.board.ToggleOrientation()
	default:
		return false, nil
	}
	return true, nil
}
