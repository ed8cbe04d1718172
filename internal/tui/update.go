package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanbankarma/karma/internal/api"
	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/internal/model"
)

// Messages are the explicit actions of the board session. Every state
// transition flows through one of these.
type (
	boardsLoadedMsg struct{ boards []model.Board }
	tasksLoadedMsg  struct{ tasks []model.Task }
	boardCreatedMsg struct{ board model.Board }
	boardRenamedMsg struct {
		id    string
		title string
	}
	boardDeletedMsg struct{ id string }
	taskCreatedMsg  struct{ task model.Task }
	taskSavedMsg    struct {
		id    string
		title string
	}
	taskMovedMsg      struct{ id string }
	taskMoveFailedMsg struct {
		id   string
		prev model.Status
		err  error
	}
	taskDeletedMsg struct{ id string }
	errMsg         struct{ err error }
)

// Init loads boards and tasks
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchBoards(), m.fetchTasks())
}

func (m Model) fetchBoards() tea.Cmd {
	return func() tea.Msg {
		boards, err := m.client.Boards()
		if err != nil {
			return errMsg{err}
		}
		return boardsLoadedMsg{boards}
	}
}

func (m Model) fetchTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.client.Tasks()
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks}
	}
}

// moveTask issues the status PUT for an already-applied optimistic move.
// prev is carried so a failure can roll the card back.
func (m Model) moveTask(id string, to, prev model.Status) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.MoveTask(id, to); err != nil {
			return taskMoveFailedMsg{id: id, prev: prev, err: err}
		}
		return taskMovedMsg{id}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardsLoadedMsg:
		m.boards = msg.boards
		if m.boardCursor >= len(m.boards) {
			m.boardCursor = 0
		}
		m.applyBoardFilter()
		return m, nil

	case tasksLoadedMsg:
		m.allTasks = msg.tasks
		m.applyBoardFilter()
		return m, nil

	case boardCreatedMsg:
		m.boards = append(m.boards, msg.board)
		m.boardCursor = len(m.boards) - 1
		m.applyBoardFilter()
		m.message = fmt.Sprintf("Created board %q", msg.board.Title)
		return m, nil

	case boardRenamedMsg:
		for i := range m.boards {
			if m.boards[i].ID == msg.id {
				m.boards[i].Title = msg.title
			}
		}
		m.message = "Board renamed"
		return m, nil

	case boardDeletedMsg:
		kept := m.boards[:0]
		for _, b := range m.boards {
			if b.ID != msg.id {
				kept = append(kept, b)
			}
		}
		m.boards = kept
		if m.boardCursor >= len(m.boards) {
			m.boardCursor = 0
		}
		m.applyBoardFilter()
		m.message = "Board deleted"
		return m, m.fetchTasks()

	case taskCreatedMsg:
		// Append only now that the server assigned an id.
		m.allTasks = append(m.allTasks, msg.task)
		m.applyBoardFilter()
		m.message = fmt.Sprintf("Added %q", msg.task.Title)
		return m, nil

	case taskSavedMsg:
		for i := range m.allTasks {
			if m.allTasks[i].ID == msg.id {
				m.allTasks[i].Title = msg.title
			}
		}
		m.applyBoardFilter()
		m.message = "Task updated"
		return m, nil

	case taskMovedMsg:
		// The optimistic state is now confirmed; nothing to change.
		return m, nil

	case taskMoveFailedMsg:
		// Roll the card back to where it was and surface the error.
		m.setStatus(msg.id, msg.prev)
		m.clampCursor()
		m.errText = fmt.Sprintf("Move failed: %v", msg.err)
		logger.Warn("task move rolled back",
			logger.F("task", msg.id), logger.F("error", msg.err))
		return m, nil

	case taskDeletedMsg:
		kept := m.allTasks[:0]
		for _, t := range m.allTasks {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.allTasks = kept
		m.applyBoardFilter()
		m.message = "Task deleted"
		return m, nil

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeAddBoard, ModeEditTask, ModeRenameBoard:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errText = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneBoards {
			m.pane = PaneColumns
		} else {
			m.pane = PaneBoards
		}

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Left):
		if m.pane == PaneColumns && m.col > 0 {
			m.col--
			m.clampCursor()
		} else {
			m.pane = PaneBoards
		}

	case key.Matches(msg, keys.Right):
		if m.pane == PaneBoards {
			m.pane = PaneColumns
		} else if m.col < 2 {
			m.col++
			m.clampCursor()
		}

	case key.Matches(msg, keys.MoveLeft):
		return m.handleMove(-1)

	case key.Matches(msg, keys.MoveRight):
		return m.handleMove(1)

	case key.Matches(msg, keys.Add):
		if m.selectedBoard() == nil {
			m.errText = "Create a board first (B)"
			return m, nil
		}
		m.mode = ModeAddTask
		m.input.SetValue("")
		m.input.Placeholder = "Enter task..."
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.AddBoard):
		m.mode = ModeAddBoard
		m.input.SetValue("")
		m.input.Placeholder = "Enter board title..."
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Edit):
		if m.pane == PaneColumns {
			if task := m.currentTask(); task != nil {
				m.mode = ModeEditTask
				m.editID = task.ID
				m.input.SetValue(task.Title)
				m.input.Placeholder = "Edit task..."
				m.input.Focus()
				return m, textinput.Blink
			}
		}

	case key.Matches(msg, keys.Rename):
		if m.pane == PaneBoards {
			if board := m.selectedBoard(); board != nil {
				m.mode = ModeRenameBoard
				m.editID = board.ID
				m.input.SetValue(board.Title)
				m.input.Placeholder = "Rename board..."
				m.input.Focus()
				return m, textinput.Blink
			}
		}

	case key.Matches(msg, keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, keys.Refresh):
		m.message = "Refreshing..."
		return m, tea.Batch(m.fetchBoards(), m.fetchTasks())

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneBoards {
		if m.boardCursor > 0 {
			m.boardCursor--
			m.row = 0
			m.applyBoardFilter()
		}
	} else if m.row > 0 {
		m.row--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneBoards {
		if m.boardCursor < len(m.boards)-1 {
			m.boardCursor++
			m.row = 0
			m.applyBoardFilter()
		}
	} else {
		if m.row < len(m.columns()[m.col])-1 {
			m.row++
		}
	}
}

// handleMove is the drag-and-drop path: the card's status changes locally
// first, then the PUT goes out. taskMoveFailedMsg restores the old status.
func (m Model) handleMove(dir int) (tea.Model, tea.Cmd) {
	if m.pane != PaneColumns {
		return m, nil
	}
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	target := m.col + dir
	if target < 0 || target > 2 {
		return m, nil
	}

	prev := task.Status
	to := model.Statuses[target]
	m.setStatus(task.ID, to)
	m.col = target
	m.clampCursor()
	m.message = fmt.Sprintf("Moved to %s", to)
	return m, m.moveTask(task.ID, to, prev)
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	if m.pane == PaneBoards {
		board := m.selectedBoard()
		if board == nil {
			return m, nil
		}
		id := board.ID
		return m, func() tea.Msg {
			if err := m.client.DeleteBoard(id); err != nil {
				return errMsg{err}
			}
			return boardDeletedMsg{id}
		}
	}

	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	id := task.ID
	return m, func() tea.Msg {
		if err := m.client.DeleteTask(id); err != nil {
			return errMsg{err}
		}
		return taskDeletedMsg{id}
	}
}

// updateInput handles key presses while an input modal is open
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		mode := m.mode
		editID := m.editID
		m.mode = ModeNormal
		m.input.Blur()
		if value == "" {
			return m, nil
		}

		switch mode {
		case ModeAddTask:
			board := m.selectedBoard()
			if board == nil {
				return m, nil
			}
			boardID := board.ID
			status := string(model.Statuses[m.col])
			return m, func() tea.Msg {
				task, err := m.client.CreateTask(api.NewTask{
					Title:   value,
					Status:  status,
					BoardID: boardID,
				})
				if err != nil {
					return errMsg{err}
				}
				return taskCreatedMsg{task}
			}

		case ModeAddBoard:
			return m, func() tea.Msg {
				board, err := m.client.CreateBoard(value)
				if err != nil {
					return errMsg{err}
				}
				return boardCreatedMsg{board}
			}

		case ModeEditTask:
			return m, func() tea.Msg {
				if err := m.client.UpdateTask(editID, api.TaskPatch{Title: &value}); err != nil {
					return errMsg{err}
				}
				return taskSavedMsg{id: editID, title: value}
			}

		case ModeRenameBoard:
			return m, func() tea.Msg {
				if err := m.client.RenameBoard(editID, value); err != nil {
					return errMsg{err}
				}
				return boardRenamedMsg{id: editID, title: value}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
