package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/assist"
	"quill/internal/store"
	"quill/internal/tui/components/notefield"
)

// pane identifies which side of the workspace has focus.
type pane int

const (
	paneTasks pane = iota
	paneDetail
)

// Layout constants shared by View and the mouse routing in Update.
const (
	taskListWidth = 30
	paneGutter    = 2
	detailTopRows = 2 // title line + separator above the note field
)

// Model represents the Bubble Tea model for the workspace TUI
type Model struct {
	store     *store.Store
	assistant *assist.Assistant

	tasks    []store.Task
	selected int
	note     notefield.Model
	focus    pane

	width     int
	height    int
	ready     bool
	status    string
	assisting bool
}

// tasksLoadedMsg delivers the task list from the store.
type tasksLoadedMsg struct {
	tasks []store.Task
	err   error
}

// taskCommitMsg is a note field commit tagged with the task that owned the
// draft when the commit was produced. The tag is applied at command time so a
// selection change landing before the commit cannot redirect the write.
type taskCommitMsg struct {
	taskID string
	value  string
}

// detailSavedMsg reports the outcome of persisting a commit.
type detailSavedMsg struct {
	taskID string
	err    error
}

// assistDoneMsg delivers the assistant's rewritten detail text.
type assistDoneMsg struct {
	taskID  string
	details string
	err     error
}

// clipboardMsg reports the outcome of a copy-to-clipboard.
type clipboardMsg struct {
	err error
}

// NewModel creates a new workspace model
func NewModel(st *store.Store, assistant *assist.Assistant) Model {
	note := notefield.New("")
	return Model{
		store:     st,
		assistant: assistant,
		note:      note,
		focus:     paneTasks,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks()
}

// currentTask returns the selected task, or nil when the list is empty.
func (m *Model) currentTask() *store.Task {
	if len(m.tasks) == 0 || m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.selected]
}
