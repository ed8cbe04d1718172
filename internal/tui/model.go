package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/kanbankarma/karma/internal/api"
	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneBoards Pane = iota
	PaneColumns
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddBoard
	ModeEditTask
	ModeRenameBoard
	ModeHelp
)

// Model is the kanban TUI model. It is the single source of truth for the
// active board session: boards, the selected board, and that board's tasks,
// reconciled against server responses after every mutation.
type Model struct {
	client *api.Client

	boards   []model.Board
	allTasks []model.Task // user-wide, as last fetched
	tasks    []model.Task // active board subset

	// UI state
	width       int
	height      int
	pane        Pane
	mode        Mode
	boardCursor int
	col         int // focused status column, indexes model.Statuses
	row         int // focused card within the column

	// Input
	input  textinput.Model
	editID string // task being edited / board being renamed

	message string
	errText string
}

// NewModel creates a new TUI model
func NewModel(client *api.Client) Model {
	logger.Info("Initializing kanban TUI")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	return Model{
		client: client,
		pane:   PaneBoards,
		mode:   ModeNormal,
		input:  ti,
	}
}

// selectedBoard returns the active board, or nil before boards load.
func (m *Model) selectedBoard() *model.Board {
	if m.boardCursor < len(m.boards) {
		return &m.boards[m.boardCursor]
	}
	return nil
}

// applyBoardFilter rebuilds the active task subset from the user-wide list.
// Selecting a board never talks to the server; the subset is a client-side
// filter of the last fetch.
func (m *Model) applyBoardFilter() {
	board := m.selectedBoard()
	m.tasks = m.tasks[:0]
	if board == nil {
		return
	}
	for _, t := range m.allTasks {
		if t.BoardID == board.ID {
			m.tasks = append(m.tasks, t)
		}
	}
	m.clampCursor()
}

// columns partitions the active tasks into the three status buckets.
// A task with any other status lands in no column.
func (m *Model) columns() [3][]model.Task {
	var cols [3][]model.Task
	for _, t := range m.tasks {
		for i, s := range model.Statuses {
			if t.Status == s {
				cols[i] = append(cols[i], t)
				break
			}
		}
	}
	return cols
}

// currentTask returns the focused card, or nil.
func (m *Model) currentTask() *model.Task {
	col := m.columns()[m.col]
	if m.row >= len(col) {
		return nil
	}
	// Map back into m.tasks so callers can mutate the canonical copy.
	id := col[m.row].ID
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i]
		}
	}
	return nil
}

// setStatus rewrites a task's status in both the active subset and the
// user-wide list, keeping the two views consistent.
func (m *Model) setStatus(id string, status model.Status) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Status = status
		}
	}
	for i := range m.allTasks {
		if m.allTasks[i].ID == id {
			m.allTasks[i].Status = status
		}
	}
}

func (m *Model) clampCursor() {
	if m.col < 0 {
		m.col = 0
	}
	if m.col > 2 {
		m.col = 2
	}
	n := len(m.columns()[m.col])
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}
