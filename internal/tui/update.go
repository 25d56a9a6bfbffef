package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/logger"
	"quill/internal/tui/components/notefield"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.note.SetSize(m.detailWidth(), m.detailHeight())
		return m, nil

	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)

	case taskCommitMsg:
		return m.handleCommit(msg)

	case detailSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.err)
			logger.Error("save failed for task %s: %v", msg.taskID, msg.err)
		} else {
			m.status = "saved"
		}
		return m, nil

	case assistDoneMsg:
		return m.handleAssistDone(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = "copied"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Everything else (the surface's mount and cursor-placement ticks
	// included) flows through to the note field.
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, m.noteCmd(cmd)
}

// noteCmd tags any CommitMsg the note field produces with the task whose
// details it is editing right now. Commits resolve asynchronously; by the time
// one lands, the selection may already point at a different task.
func (m Model) noteCmd(cmd tea.Cmd) tea.Cmd {
	task := m.currentTask()
	if cmd == nil || task == nil {
		return cmd
	}
	id := task.ID
	return func() tea.Msg {
		msg := cmd()
		if commit, ok := msg.(notefield.CommitMsg); ok {
			return taskCommitMsg{taskID: id, value: commit.Value}
		}
		return msg
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always wins, even mid-edit.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// While the note field is editing, it owns the keyboard.
	if m.focus == paneDetail && m.note.Mode() == notefield.ModeEditing {
		if msg.Type == tea.KeyTab {
			// Leaving the detail pane is a focus loss; the note field
			// arbitrates whether a commit is due.
			m.focus = paneTasks
			var cmd tea.Cmd
			m.note, cmd = m.note.Update(notefield.BlurMsg{Target: "tasks"})
			return m, m.noteCmd(cmd)
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, m.noteCmd(cmd)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if m.focus == paneTasks {
			m.focus = paneDetail
		} else {
			m.focus = paneTasks
		}
		return m, nil

	case "j", "down":
		if m.focus == paneTasks && m.selected < len(m.tasks)-1 {
			return m.selectTask(m.selected + 1)
		}

	case "k", "up":
		if m.focus == paneTasks && m.selected > 0 {
			return m.selectTask(m.selected - 1)
		}

	case "r":
		if m.focus == paneTasks {
			m.status = "reloading"
			return m, m.loadTasks()
		}

	case "x":
		if m.focus == paneTasks {
			return m.toggleDone()
		}

	case "a":
		if m.focus == paneDetail && !m.assisting {
			return m.startAssist()
		}

	case "y":
		if m.focus == paneDetail {
			return m, m.copyDetails()
		}
	}

	if m.focus == paneDetail {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, m.noteCmd(cmd)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	detailX := taskListWidth + paneGutter
	if msg.X >= detailX {
		// Translate into detail-pane-local coordinates before forwarding so
		// the note field's hit testing lines up with what it rendered.
		local := msg
		local.X -= detailX
		local.Y -= detailTopRows
		m.focus = paneDetail
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(local)
		return m, m.noteCmd(cmd)
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// A click in the task list pulls focus away from the detail pane first,
	// with any resulting commit tagged for the task that owned the draft.
	var cmds []tea.Cmd
	if m.focus == paneDetail {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(notefield.BlurMsg{Target: "tasks"})
		cmds = append(cmds, m.noteCmd(cmd))
	}
	m.focus = paneTasks

	if row := msg.Y - 1; row >= 0 && row < len(m.tasks) {
		var model tea.Model
		var cmd tea.Cmd
		model, cmd = m.selectTask(row)
		cmds = append(cmds, cmd)
		return model, tea.Batch(cmds...)
	}
	return m, tea.Batch(cmds...)
}

// selectTask moves the selection and pushes the newly selected task's details
// into the note field as an external value change.
func (m Model) selectTask(index int) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.note.Mode() == notefield.ModeEditing {
		// Selection change while editing counts as leaving the detail area.
		// The blur is tagged before the selection moves so the commit cannot
		// land on the newly selected task.
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(notefield.BlurMsg{Target: "tasks/list"})
		cmds = append(cmds, m.noteCmd(cmd))
	}

	m.selected = index
	if task := m.currentTask(); task != nil {
		m.note.SetValue(task.Details)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("load failed: %v", msg.err)
		logger.Error("failed to load tasks: %v", msg.err)
		return m, nil
	}

	m.tasks = msg.tasks
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if task := m.currentTask(); task != nil {
		m.note.SetValue(task.Details)
	} else {
		m.note.SetValue("")
	}
	m.status = fmt.Sprintf("%d tasks", len(m.tasks))
	return m, nil
}

// handleCommit persists a committed detail value to the task that owned the
// draft. The note field has already advanced its mirror; the store write
// happens off the update loop.
func (m Model) handleCommit(msg taskCommitMsg) (tea.Model, tea.Cmd) {
	for i := range m.tasks {
		if m.tasks[i].ID == msg.taskID {
			m.tasks[i].Details = msg.value
			m.tasks[i].UpdatedAt = time.Now()
			break
		}
	}

	st := m.store
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := st.UpdateDetails(ctx, msg.taskID, msg.value)
		if err == nil {
			logger.Persist(msg.taskID, msg.value)
		}
		return detailSavedMsg{taskID: msg.taskID, err: err}
	}
}

func (m Model) handleAssistDone(msg assistDoneMsg) (tea.Model, tea.Cmd) {
	m.assisting = false
	if msg.err != nil {
		m.status = fmt.Sprintf("assist failed: %v", msg.err)
		logger.Error("assist failed for task %s: %v", msg.taskID, msg.err)
		return m, nil
	}

	// The rewrite lands as an external value change: any draft in progress
	// is dropped in favor of the new text.
	for i := range m.tasks {
		if m.tasks[i].ID == msg.taskID {
			m.tasks[i].Details = msg.details
			if i == m.selected {
				m.note.SetValue(msg.details)
			}
			break
		}
	}

	id := msg.taskID
	st := m.store
	m.status = "assist done"
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := st.UpdateDetails(ctx, id, msg.details)
		if err == nil {
			logger.Persist(id, msg.details)
		}
		return detailSavedMsg{taskID: id, err: err}
	}
}

func (m Model) startAssist() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil || m.assistant == nil {
		return m, nil
	}

	m.assisting = true
	m.status = "assisting…"
	t := *task
	assistant := m.assistant
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		details, err := assistant.Rewrite(ctx, t)
		return assistDoneMsg{taskID: t.ID, details: details, err: err}
	}
}

func (m Model) toggleDone() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}

	task.Done = !task.Done
	id, done := task.ID, task.Done
	st := m.store
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := st.SetDone(ctx, id, done); err != nil {
			return detailSavedMsg{taskID: id, err: err}
		}
		return detailSavedMsg{taskID: id}
	}
}

func (m Model) copyDetails() tea.Cmd {
	task := m.currentTask()
	if task == nil {
		return nil
	}
	details := task.Details
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(details)}
	}
}

func (m Model) loadTasks() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		tasks, err := st.List(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}
