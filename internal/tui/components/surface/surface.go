package surface

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CreatedMsg is emitted once after the surface is mounted, so owners can defer
// programmatic focus and selection placement until the surface is ready.
type CreatedMsg struct {
	ID string
}

// Position is a cursor location: row index and column in runes.
type Position struct {
	Row int
	Col int
}

// Range is a selection over rune offsets into the joined document. Anchor may
// be greater than Head when the selection was made backwards.
type Range struct {
	Anchor int
	Head   int
}

// Bounds returns the range ordered low to high.
func (r Range) Bounds() (int, int) {
	if r.Anchor > r.Head {
		return r.Head, r.Anchor
	}
	return r.Anchor, r.Head
}

// Empty reports whether the range is collapsed.
func (r Range) Empty() bool {
	return r.Anchor == r.Head
}

// Model is a plain multi-line editing surface: document text, cursor,
// direction-sensitive selection, and focus state. Owners layer their own key
// bindings on top; anything they don't intercept lands here.
type Model struct {
	id           string
	content      []string
	cursor       Position
	anchor       *Position
	focused      bool
	width        int
	height       int
	scrollOffset int
	placeholder  string
}

func New(id string) Model {
	return Model{
		id:      id,
		content: []string{""},
		width:   60,
		height:  10,
	}
}

// ID identifies this surface for blur arbitration: focus targets prefixed with
// it (overlays, toolbars) belong to the surface's own subtree.
func (m Model) ID() string {
	return m.id
}

func (m Model) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return CreatedMsg{ID: id}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		return m.ContinueLine()
	case "backspace":
		return m.backspace()
	case "tab":
		return m.insertText("\t")
	case "left":
		m.cursor = m.moveLeft(1)
		m.anchor = nil
	case "right":
		m.cursor = m.moveRight(1)
		m.anchor = nil
	case "up":
		m.cursor = m.moveUp(1)
		m.anchor = nil
	case "down":
		m.cursor = m.moveDown(1)
		m.anchor = nil
	case "home":
		m.cursor.Col = 0
		m.anchor = nil
	case "end":
		m.cursor = m.lineEnd(m.cursor.Row)
		m.anchor = nil
	case "shift+left":
		m = m.extendSelection()
		m.cursor = m.moveLeft(1)
	case "shift+right":
		m = m.extendSelection()
		m.cursor = m.moveRight(1)
	case "shift+up":
		m = m.extendSelection()
		m.cursor = m.moveUp(1)
	case "shift+down":
		m = m.extendSelection()
		m.cursor = m.moveDown(1)
	default:
		if msg.Type == tea.KeySpace {
			return m.insertText(" ")
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			return m.insertText(string(msg.Runes))
		}
	}
	m = m.dropCollapsedAnchor()
	return m.adjustScroll()
}

// extendSelection plants the anchor at the cursor if no selection is active.
func (m Model) extendSelection() Model {
	if m.anchor == nil {
		anchor := m.cursor
		m.anchor = &anchor
	}
	return m
}

func (m Model) dropCollapsedAnchor() Model {
	if m.anchor != nil && *m.anchor == m.cursor {
		m.anchor = nil
	}
	return m
}

// Value returns the document with newline separators.
func (m Model) Value() string {
	return strings.Join(m.content, "\n")
}

// SetValue replaces the document and resets cursor, selection and scroll.
func (m *Model) SetValue(value string) {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	m.content = strings.Split(value, "\n")
	m.cursor = Position{0, 0}
	m.anchor = nil
	m.scrollOffset = 0
}

// SelectionRange returns the current selection as rune offsets. With no active
// selection both ends sit at the cursor.
func (m Model) SelectionRange() Range {
	head := m.Offset(m.cursor)
	if m.anchor == nil {
		return Range{Anchor: head, Head: head}
	}
	return Range{Anchor: m.Offset(*m.anchor), Head: head}
}

// Dispatch replaces the document and selection atomically. Transform commands
// use it to apply a computed change without going through key handling.
func (m *Model) Dispatch(doc string, sel Range) {
	m.SetValue(doc)
	m.cursor = m.PositionAt(sel.Head)
	if !sel.Empty() {
		anchor := m.PositionAt(sel.Anchor)
		m.anchor = &anchor
	}
	*m = m.adjustScroll()
}

// CursorEnd places the cursor at end-of-document with no selection.
func (m *Model) CursorEnd() {
	row := len(m.content) - 1
	m.cursor = m.lineEnd(row)
	m.anchor = nil
	*m = m.adjustScroll()
}

// Offset converts a position to a rune offset into the joined document.
// Newlines count as one rune each.
func (m Model) Offset(p Position) int {
	offset := 0
	for row := 0; row < p.Row && row < len(m.content); row++ {
		offset += len([]rune(m.content[row])) + 1
	}
	if p.Row < len(m.content) {
		col := p.Col
		if max := len([]rune(m.content[p.Row])); col > max {
			col = max
		}
		offset += col
	}
	return offset
}

// PositionAt converts a rune offset back to a position, clamping to the
// document bounds.
func (m Model) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	for row, line := range m.content {
		length := len([]rune(line))
		if offset <= length {
			return Position{Row: row, Col: offset}
		}
		offset -= length + 1
	}
	return m.lineEnd(len(m.content) - 1)
}

func (m Model) lineEnd(row int) Position {
	if row < 0 {
		row = 0
	}
	if row >= len(m.content) {
		row = len(m.content) - 1
	}
	return Position{Row: row, Col: len([]rune(m.content[row]))}
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m *Model) SetHeight(height int) {
	m.height = height
	*m = m.adjustScroll()
}

func (m Model) Height() int {
	return m.height
}

func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m Model) Focused() bool {
	return m.focused
}

func (m Model) adjustScroll() Model {
	if m.cursor.Row < m.scrollOffset {
		m.scrollOffset = m.cursor.Row
	}
	if m.height > 0 && m.cursor.Row >= m.scrollOffset+m.height {
		m.scrollOffset = m.cursor.Row - m.height + 1
	}
	return m
}

func (m Model) moveLeft(count int) Position {
	pos := m.cursor
	for i := 0; i < count; i++ {
		if pos.Col > 0 {
			pos.Col--
		} else if pos.Row > 0 {
			pos.Row--
			pos.Col = len([]rune(m.content[pos.Row]))
		}
	}
	return pos
}

func (m Model) moveRight(count int) Position {
	pos := m.cursor
	for i := 0; i < count; i++ {
		if pos.Col < len([]rune(m.content[pos.Row])) {
			pos.Col++
		} else if pos.Row < len(m.content)-1 {
			pos.Row++
			pos.Col = 0
		}
	}
	return pos
}

func (m Model) moveUp(count int) Position {
	pos := m.cursor
	pos.Row -= count
	if pos.Row < 0 {
		pos.Row = 0
	}
	if max := len([]rune(m.content[pos.Row])); pos.Col > max {
		pos.Col = max
	}
	return pos
}

func (m Model) moveDown(count int) Position {
	pos := m.cursor
	pos.Row += count
	if pos.Row > len(m.content)-1 {
		pos.Row = len(m.content) - 1
	}
	if max := len([]rune(m.content[pos.Row])); pos.Col > max {
		pos.Col = max
	}
	return pos
}

func (m Model) insertText(text string) Model {
	m = m.deleteSelection()
	line := []rune(m.content[m.cursor.Row])
	inserted := []rune(text)

	next := make([]rune, 0, len(line)+len(inserted))
	next = append(next, line[:m.cursor.Col]...)
	next = append(next, inserted...)
	next = append(next, line[m.cursor.Col:]...)

	m.content[m.cursor.Row] = string(next)
	m.cursor.Col += len(inserted)
	return m.adjustScroll()
}

func (m Model) backspace() Model {
	if m.anchor != nil {
		return m.deleteSelection().adjustScroll()
	}
	if m.cursor.Col > 0 {
		line := []rune(m.content[m.cursor.Row])
		m.content[m.cursor.Row] = string(line[:m.cursor.Col-1]) + string(line[m.cursor.Col:])
		m.cursor.Col--
	} else if m.cursor.Row > 0 {
		// Join with previous line
		prev := []rune(m.content[m.cursor.Row-1])
		m.content[m.cursor.Row-1] = string(prev) + m.content[m.cursor.Row]

		next := make([]string, 0, len(m.content)-1)
		next = append(next, m.content[:m.cursor.Row]...)
		next = append(next, m.content[m.cursor.Row+1:]...)
		m.content = next

		m.cursor.Row--
		m.cursor.Col = len(prev)
	}
	return m.adjustScroll()
}

// deleteSelection removes the selected text, leaving the cursor at the start
// of where the selection was. No-op without an active selection.
func (m Model) deleteSelection() Model {
	if m.anchor == nil {
		return m
	}
	sel := m.SelectionRange()
	from, to := sel.Bounds()
	runes := []rune(m.Value())
	doc := string(runes[:from]) + string(runes[to:])

	m.content = strings.Split(doc, "\n")
	m.cursor = m.PositionAt(from)
	m.anchor = nil
	return m
}
