package surface

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressKey(m Model, keyType tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: keyType})
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestOffsetConversionRoundTrip(t *testing.T) {
	m := New("test")
	m.SetValue("héllo\n你好\nworld")

	tests := []struct {
		name   string
		pos    Position
		offset int
	}{
		{"document start", Position{0, 0}, 0},
		{"end of first line", Position{0, 5}, 5},
		{"start of second line", Position{1, 0}, 6},
		{"inside multibyte line", Position{1, 1}, 7},
		{"last line", Position{2, 3}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Offset(tt.pos); got != tt.offset {
				t.Errorf("Offset(%+v) = %d, want %d", tt.pos, got, tt.offset)
			}
			if got := m.PositionAt(tt.offset); got != tt.pos {
				t.Errorf("PositionAt(%d) = %+v, want %+v", tt.offset, got, tt.pos)
			}
		})
	}
}

func TestShiftArrowsExtendSelection(t *testing.T) {
	m := New("test")
	m.SetValue("hello")
	m.CursorEnd()

	m = pressKey(m, tea.KeyShiftLeft)
	m = pressKey(m, tea.KeyShiftLeft)

	sel := m.SelectionRange()
	if sel.Anchor != 5 || sel.Head != 3 {
		t.Errorf("selection = %+v, want anchor 5 head 3", sel)
	}

	// A plain arrow collapses the selection.
	m = pressKey(m, tea.KeyLeft)
	if !m.SelectionRange().Empty() {
		t.Error("expected collapsed selection after plain arrow")
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	m := New("test")
	m.SetValue("hello world")
	m.Dispatch("hello world", Range{Anchor: 6, Head: 11})

	m = typeText(m, "go")
	if got := m.Value(); got != "hello go" {
		t.Errorf("value = %q, want %q", got, "hello go")
	}
}

func TestDispatchPlacesSelection(t *testing.T) {
	m := New("test")
	m.Dispatch("Hello **World**", Range{Anchor: 8, Head: 13})

	if got := m.Value(); got != "Hello **World**" {
		t.Errorf("value = %q", got)
	}
	sel := m.SelectionRange()
	if sel.Anchor != 8 || sel.Head != 13 {
		t.Errorf("selection = %+v, want anchor 8 head 13", sel)
	}
}

func TestCursorEnd(t *testing.T) {
	m := New("test")
	m.SetValue("one\ntwo")
	m.CursorEnd()

	if got := m.Offset(m.cursor); got != 7 {
		t.Errorf("cursor offset = %d, want 7", got)
	}
	if !m.SelectionRange().Empty() {
		t.Error("expected no selection at end-of-document")
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	m := New("test")
	m.SetValue("one\ntwo")
	m.cursor = Position{Row: 1, Col: 0}

	m = pressKey(m, tea.KeyBackspace)
	if got := m.Value(); got != "onetwo" {
		t.Errorf("value = %q, want %q", got, "onetwo")
	}
	if m.cursor != (Position{Row: 0, Col: 3}) {
		t.Errorf("cursor = %+v", m.cursor)
	}
}

func TestContinueLine(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bullet continues", "- item", "- item\n- "},
		{"star bullet continues", "* item", "* item\n* "},
		{"quote continues", "> quoted", "> quoted\n> "},
		{"checkbox continues unchecked", "- [x] done", "- [x] done\n- [ ] "},
		{"ordered item increments", "3. third", "3. third\n4. "},
		{"plain line splits without marker", "plain", "plain\n"},
		{"marker-only bullet terminates the list", "- ", ""},
		{"marker-only ordered item terminates the list", "2. ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("test")
			m.SetValue(tt.doc)
			m.CursorEnd()

			m = pressKey(m, tea.KeyEnter)
			if got := m.Value(); got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContinueLineMidLineCarriesTail(t *testing.T) {
	m := New("test")
	m.SetValue("- one two")
	m.cursor = Position{Row: 0, Col: 5} // between "one" and " two"

	m = pressKey(m, tea.KeyEnter)
	if got := m.Value(); got != "- one\n-  two" {
		t.Errorf("value = %q, want %q", got, "- one\n-  two")
	}
}

func TestSetValueNormalizesCRLF(t *testing.T) {
	m := New("test")
	m.SetValue("a\r\nb")
	if got := m.Value(); got != "a\nb" {
		t.Errorf("value = %q, want %q", got, "a\nb")
	}
}
