package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle      = lipgloss.NewStyle().Background(lipgloss.Color("7")).Foreground(lipgloss.Color("0"))
	selectionStyle   = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m Model) View() string {
	if len(m.content) == 0 {
		return ""
	}

	showPlaceholder := len(m.content) == 1 && m.content[0] == "" && m.placeholder != ""

	var lines []string
	for i := 0; i < m.height; i++ {
		row := m.scrollOffset + i
		var styled string

		switch {
		case row >= len(m.content):
			styled = ""
		case row == 0 && showPlaceholder:
			styled = m.renderPlaceholder()
		case m.anchor != nil:
			styled = m.renderLineWithSelection(row)
		default:
			styled = m.renderLine(row)
		}
		lines = append(lines, styled)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderLine(row int) string {
	line := []rune(m.content[row])
	if row != m.cursor.Row || !m.focused {
		return string(line)
	}

	if m.cursor.Col >= len(line) {
		return string(line) + cursorStyle.Render(" ")
	}
	before := string(line[:m.cursor.Col])
	char := string(line[m.cursor.Col])
	after := string(line[m.cursor.Col+1:])
	return before + cursorStyle.Render(char) + after
}

func (m Model) renderLineWithSelection(row int) string {
	sel := m.SelectionRange()
	from, to := sel.Bounds()
	lineStart := m.Offset(Position{Row: row, Col: 0})
	line := []rune(m.content[row])
	lineEnd := lineStart + len(line)

	if to <= lineStart || from >= lineEnd {
		return m.renderLine(row)
	}

	startCol := 0
	if from > lineStart {
		startCol = from - lineStart
	}
	endCol := len(line)
	if to < lineEnd {
		endCol = to - lineStart
	}

	before := string(line[:startCol])
	selected := string(line[startCol:endCol])
	after := string(line[endCol:])
	return before + selectionStyle.Render(selected) + after
}

func (m Model) renderPlaceholder() string {
	runes := []rune(m.placeholder)
	if len(runes) == 0 {
		return ""
	}
	if !m.focused {
		return placeholderStyle.Render(m.placeholder)
	}
	return cursorStyle.Render(string(runes[0])) + placeholderStyle.Render(string(runes[1:]))
}
