package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quill/internal/tui/components"
)

var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	selectedTaskStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("12"))

	focusedListHeaderStyle = listHeaderStyle.Underline(true)

	doneTaskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTaskList(),
		strings.Repeat(" ", paneGutter),
		m.renderDetail(),
	)

	footer := components.NewFooterComponent(m.note.Mode(), m.width)
	footer.UpdateStatus(m.dbPath(), m.status)

	content := lipgloss.NewStyle().Height(m.contentHeight()).Render(body)
	return content + "\n" + footer.Render()
}

func (m Model) renderTaskList() string {
	var b strings.Builder

	header := listHeaderStyle
	if m.focus == paneTasks {
		header = focusedListHeaderStyle
	}
	b.WriteString(header.Render("Tasks"))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(emptyListHint())
	}

	for i, task := range m.tasks {
		mark := "[ ]"
		if task.Done {
			mark = "[x]"
		}
		line := truncate(mark+" "+task.Title, taskListWidth)

		switch {
		case i == m.selected:
			line = selectedTaskStyle.Render(padRight(line, taskListWidth))
		case task.Done:
			line = doneTaskStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(taskListWidth).Render(b.String())
}

func (m Model) renderDetail() string {
	task := m.currentTask()
	if task == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(task.Title))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.detailWidth())))
	b.WriteString("\n")
	b.WriteString(m.note.View())
	return b.String()
}

func emptyListHint() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("No tasks yet. Try `quill add`.") + "\n"
}

func (m Model) dbPath() string {
	if m.store == nil {
		return ""
	}
	return m.store.Path()
}

func (m Model) detailWidth() int {
	w := m.width - taskListWidth - paneGutter
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) detailHeight() int {
	h := m.contentHeight() - detailTopRows
	if h < 1 {
		h = 1
	}
	return h
}

// contentHeight is the body area above the one-line footer.
func (m Model) contentHeight() int {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
