package surface

import "testing"

func TestContinueLineCursorPlacement(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantRow int
		wantCol int
	}{
		{
			name:    "plain line lands at start of new line",
			value:   "hello",
			wantRow: 1,
			wantCol: 0,
		},
		{
			name:    "bullet lands after the repeated marker",
			value:   "- first",
			wantRow: 1,
			wantCol: 2,
		},
		{
			name:    "indented bullet keeps indentation in the marker",
			value:   "  * nested",
			wantRow: 1,
			wantCol: 4,
		},
		{
			name:    "checkbox lands after the unchecked marker",
			value:   "- [x] done thing",
			wantRow: 1,
			wantCol: 6,
		},
		{
			name:    "ordered item lands after the incremented marker",
			value:   "3. third",
			wantRow: 1,
			wantCol: 3,
		},
		{
			name:    "marker-only bullet stays on the cleared line",
			value:   "- ",
			wantRow: 0,
			wantCol: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("test")
			m.SetValue(tt.value)
			m.CursorEnd()

			m = m.ContinueLine()
			if m.cursor.Row != tt.wantRow || m.cursor.Col != tt.wantCol {
				t.Errorf("cursor = %+v, want row %d col %d", m.cursor, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestSelectionRangeUsesRuneOffsets(t *testing.T) {
	m := New("test")
	m.SetValue("你好\n世界")
	anchor := Position{Row: 0, Col: 1}
	m.anchor = &anchor
	m.cursor = Position{Row: 1, Col: 1}

	sel := m.SelectionRange()
	if sel.Anchor != 1 || sel.Head != 4 {
		t.Errorf("selection = %+v, want anchor 1 head 4", sel)
	}
}
