package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kanbankarma/karma/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeAddTask, ModeAddBoard, ModeEditTask, ModeRenameBoard:
		return m.renderModal()
	case ModeHelp:
		return m.renderHelp()
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	columns := m.renderColumns()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, columns)
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	title := "Kanban Karma"
	if board := m.selectedBoard(); board != nil {
		title = fmt.Sprintf("Kanban Karma · %s", board.Title)
	}
	if email := m.client.Email(); email != "" {
		title += HelpStyle.Render(fmt.Sprintf("  (%s)", email))
	}
	return HeaderStyle.Render(title)
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString("Boards\n\n")

	if len(m.boards) == 0 {
		b.WriteString(HelpStyle.Render("none yet\npress B"))
	}
	for i, board := range m.boards {
		style := BoardItemStyle
		if i == m.boardCursor {
			style = BoardItemSelectedStyle
		}
		marker := "  "
		if i == m.boardCursor && m.pane == PaneBoards {
			marker = "> "
		}
		b.WriteString(style.Render(marker+board.Title) + "\n")
	}
	return SidebarStyle.Height(m.height - 4).Render(b.String())
}

func (m Model) renderColumns() string {
	cols := m.columns()
	colWidth := (m.width - 26) / 3
	if colWidth < 18 {
		colWidth = 18
	}

	rendered := make([]string, 0, 3)
	for i, status := range model.Statuses {
		var b strings.Builder
		b.WriteString(ColumnTitleStyle(status).Render(
			fmt.Sprintf("%s (%d)", ColumnTitle(status), len(cols[i]))) + "\n\n")

		if len(cols[i]) == 0 {
			b.WriteString(HelpStyle.Render("no tasks") + "\n")
		}
		for j, task := range cols[i] {
			b.WriteString(m.renderCard(task, i == m.col && j == m.row) + "\n")
		}

		style := ColumnStyle
		if i == m.col && m.pane == PaneColumns {
			style = ColumnFocusedStyle
		}
		rendered = append(rendered, style.Width(colWidth).Height(m.height-6).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderCard(task model.Task, selected bool) string {
	style := CardStyle
	if selected && m.pane == PaneColumns {
		style = CardSelectedStyle
	}
	if task.Color != "" {
		style = style.Foreground(lipgloss.Color(task.Color))
	}
	line := task.Title
	if !task.Timestamp.IsZero() {
		line += HelpStyle.Render("  " + task.Timestamp.Format("Jan 2"))
	}
	return style.Render(line)
}

func (m Model) renderStatusBar() string {
	if m.errText != "" {
		return StatusBarStyle.Width(m.width).Render(ErrorStyle.Render("✗ " + m.errText))
	}
	left := m.message
	if left == "" {
		left = "a add · B board · [/] move · e edit · d delete · R refresh · ? help · q quit"
	}
	return StatusBarStyle.Width(m.width).Render(left)
}

func (m Model) renderModal() string {
	titles := map[Mode]string{
		ModeAddTask:     "New Task",
		ModeAddBoard:    "New Board",
		ModeEditTask:    "Edit Task",
		ModeRenameBoard: "Rename Board",
	}
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		HeaderStyle.Render(titles[m.mode]),
		m.input.View(),
		HelpStyle.Render("enter save · esc cancel"))
	modal := ModalStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderHelp() string {
	help := `Kanban Karma

  Navigation
    tab        switch pane
    ↑/↓ ←/→    move around (boards pane / columns)

  Boards
    B          new board
    r          rename board
    d          delete board (with its tasks)

  Tasks
    a          add task to the focused column
    e          edit task title
    [ / ]      move card to the previous / next column
    d          delete task

  Other
    R          refresh from server
    q          quit

  press any key to close`
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(help))
}
