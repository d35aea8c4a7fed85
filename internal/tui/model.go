package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
)

// frameMsg drives the board's scheduler once per display frame.
type frameMsg time.Time

// headerRows is the space taken by the title and status lines.
const headerRows = 2

// Model is the bubbletea model hosting a Board.
type Model struct {
	board    *Board
	title    string
	keys     keyMap
	help     help.Model
	viewport viewport.Model

	width, height int
	err           error
	quitting      bool
	mounted       bool
}

// NewModel wraps board. The board is mounted when the first window size
// arrives.
func NewModel(board *Board, title string) Model {
	if title == "" {
		title = "stackgrid"
	}
	return Model{
		board:    board,
		title:    title,
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(scheduler.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Board returns the hosted board.
func (m Model) Board() *Board {
	return m.board
}

// Err returns the last error raised by an action.
func (m Model) Err() error {
	return m.err
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	rows := height - headerRows - 1
	if m.help.ShowAll {
		rows -= len(m.keys.FullHelp())
	}
	if rows < 1 {
		rows = 1
	}
	m.viewport.Width = width
	m.viewport.Height = rows
	m.board.Resize(width, rows)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.board.Draw())
}
