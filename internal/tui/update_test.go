package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/store"
)

// driveModel runs a command chain to completion, feeding every produced
// message back into the model. Batched commands are flattened.
func driveModel(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			model, newCmd := m.Update(msg)
			m = model.(Model)
			queue = append(queue, newCmd)
		}
	}
	return m
}

func pressModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	model, cmd := m.Update(msg)
	return driveModel(t, model.(Model), cmd)
}

func typeInto(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = pressModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// newWorkspace builds a model over an in-memory store holding two tasks.
// "alpha" is created last so List puts it first and it starts selected.
func newWorkspace(t *testing.T) (Model, *store.Store, store.Task, store.Task) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	beta, err := st.Create(ctx, "beta", "beta notes")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	alpha, err := st.Create(ctx, "alpha", "alpha notes")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	m := NewModel(st, nil)
	m = driveModel(t, m, m.Init())
	m = pressModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if task := m.currentTask(); task == nil || task.ID != alpha.ID {
		t.Fatalf("expected alpha selected initially, got %+v", m.currentTask())
	}
	return m, st, alpha, beta
}

// startEditing moves focus to the detail pane and activates the note field.
func startEditing(t *testing.T, m Model) Model {
	t.Helper()
	m = pressModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = pressModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.note.Draft() == "" {
		t.Fatal("expected a seeded draft after activation")
	}
	return m
}

func TestClickingAnotherTaskCommitsToEditedTask(t *testing.T) {
	m, st, alpha, beta := newWorkspace(t)

	m = startEditing(t, m)
	m = typeInto(t, m, "X")

	// Left click on beta's list row while alpha's draft is still open.
	m = pressModel(t, m, tea.MouseMsg{
		X: 0, Y: 2,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})

	ctx := context.Background()
	got, err := st.Get(ctx, alpha.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Details != "alpha notesX" {
		t.Errorf("alpha details = %q, want %q", got.Details, "alpha notesX")
	}

	got, err = st.Get(ctx, beta.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Details != "beta notes" {
		t.Errorf("beta details = %q, want untouched %q", got.Details, "beta notes")
	}

	if task := m.currentTask(); task == nil || task.ID != beta.ID {
		t.Fatalf("expected beta selected after click, got %+v", m.currentTask())
	}
	if m.note.Value() != "beta notes" {
		t.Errorf("note field shows %q, want %q", m.note.Value(), "beta notes")
	}
	for _, task := range m.tasks {
		if task.ID == beta.ID && task.Details != "beta notes" {
			t.Errorf("in-memory beta details = %q", task.Details)
		}
		if task.ID == alpha.ID && task.Details != "alpha notesX" {
			t.Errorf("in-memory alpha details = %q", task.Details)
		}
	}
}

func TestSelectionChangeByKeyCommitsToEditedTask(t *testing.T) {
	m, st, alpha, beta := newWorkspace(t)

	m = startEditing(t, m)
	m = typeInto(t, m, "Y")

	// Tab back to the list, then move the selection down to beta.
	m = pressModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = pressModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	ctx := context.Background()
	got, err := st.Get(ctx, alpha.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Details != "alpha notesY" {
		t.Errorf("alpha details = %q, want %q", got.Details, "alpha notesY")
	}

	got, err = st.Get(ctx, beta.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Details != "beta notes" {
		t.Errorf("beta details = %q, want untouched %q", got.Details, "beta notes")
	}
}
