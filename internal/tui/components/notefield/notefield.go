package notefield

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"quill/internal/tui/components/surface"
)

// Mode is the control's display state. Exactly one is active at any time.
type Mode int

const (
	// ModeView shows the read-only preview.
	ModeView Mode = iota
	// ModeEditing shows the editing surface seeded with the draft.
	ModeEditing
)

// CommitMsg carries a value whose normalized form differs from the previously
// committed one. It is emitted at most once per edit session, no matter how
// many exit paths fire.
type CommitMsg struct {
	Value string
}

// BlurMsg tells the control that focus left the detail area. Target names the
// focus destination; destinations inside the surface's own subtree (overlays,
// toolbars) are not exits.
type BlurMsg struct {
	Target string
}

// placeCursorMsg runs one tick after the surface reports it was created, once
// it can accept a programmatic selection.
type placeCursorMsg struct{}

var (
	linkPattern    = regexp.MustCompile(`\[[^\]]+\]\([^)]*\)`)
	emptyHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model is the dual-mode note editor: a read-only preview that a click or
// Enter/Space turns into an inline editing surface. While editing, the draft
// lives in the surface; the committed value is mirrored here for comparison
// on exit.
type Model struct {
	mode          Mode
	committed     string
	surface       surface.Model
	keys          KeyMap
	suppressExit  bool
	width         int
	height        int
	renderPreview func(string) string
}

func New(value string) Model {
	sf := surface.New("notefield/surface")
	sf.SetValue(value)
	sf.SetPlaceholder("Add details…")
	return Model{
		mode:      ModeView,
		committed: value,
		surface:   sf,
		keys:      DefaultKeyMap(),
		width:     60,
		height:    10,
	}
}

func (m Model) Mode() Mode {
	return m.mode
}

// Value returns the committed value mirror.
func (m Model) Value() string {
	return m.committed
}

// Draft returns the working copy. Only meaningful while editing.
func (m Model) Draft() string {
	return m.surface.Value()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.surface.SetWidth(width)
	m.surface.SetHeight(height)
}

// SetRenderPreview installs an optional preview renderer used in View mode
// for non-empty values. Without one, raw word-wrapped text is shown.
func (m *Model) SetRenderPreview(render func(string) string) {
	m.renderPreview = render
}

// SetValue applies an external value change: the committed mirror is
// replaced, any in-progress draft is dropped, and the control returns to
// View. Takes priority over an active edit session; no commit is emitted for
// the discarded draft.
func (m *Model) SetValue(value string) {
	m.committed = value
	m.surface.SetValue(value)
	m.surface.Blur()
	m.mode = ModeView
	m.suppressExit = false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BlurMsg:
		return m.handleBlur(msg)

	case surface.CreatedMsg:
		if m.mode != ModeEditing || msg.ID != m.surface.ID() {
			return m, nil
		}
		// The surface needs a tick to finish mounting before it can take a
		// programmatic selection.
		return m, func() tea.Msg { return placeCursorMsg{} }

	case placeCursorMsg:
		if m.mode != ModeEditing {
			return m, nil
		}
		m.surface.CursorEnd()
		m.surface.Focus()
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeView {
			return m.handleViewKey(msg)
		}
		return m.handleEditKey(msg)

	case tea.MouseMsg:
		if m.mode == ModeView {
			return m.handleClick(msg)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleViewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Activate) {
		return m.activate()
	}
	return m, nil
}

// activate starts an edit session: the draft is seeded from the committed
// value and cursor placement is deferred until the surface reports ready.
func (m Model) activate() (Model, tea.Cmd) {
	m.mode = ModeEditing
	m.suppressExit = false
	m.surface.SetValue(m.committed)
	return m, m.surface.Init()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Discard):
		// Draft dropped; a trailing blur from the programmatic close must not
		// re-process the session.
		m.suppressExit = true
		m.mode = ModeView
		m.surface.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.suppressExit = true
		cmd := m.attemptCommit(m.surface.Value())
		m.mode = ModeView
		m.surface.Blur()
		return m, cmd

	case key.Matches(msg, m.keys.Bold):
		return m.applyWrap(Bold), nil

	case key.Matches(msg, m.keys.Italic):
		return m.applyWrap(Italic), nil

	case key.Matches(msg, m.keys.Link):
		return m.applyWrap(Link), nil

	case key.Matches(msg, m.keys.Continue):
		// The surface's own list/quote continuation, invoked unmodified.
		m.surface = m.surface.ContinueLine()
		return m, nil
	}

	var cmd tea.Cmd
	m.surface, cmd = m.surface.Update(msg)
	return m, cmd
}

func (m Model) applyWrap(spec WrapSpec) Model {
	doc, sel := m.surface.Value(), m.surface.SelectionRange()
	newDoc, newSel := Wrap(doc, sel, spec)
	m.surface.Dispatch(newDoc, newSel)
	return m
}

// handleBlur arbitrates a focus loss: an already-resolved session consumes
// the suppress flag and does nothing, focus moving within the surface's own
// subtree is not an exit, and anything else commits and closes.
func (m Model) handleBlur(msg BlurMsg) (Model, tea.Cmd) {
	if m.suppressExit {
		m.suppressExit = false
		return m, nil
	}
	if strings.HasPrefix(msg.Target, m.surface.ID()) {
		return m, nil
	}
	if m.mode != ModeEditing {
		return m, nil
	}

	m.suppressExit = true
	cmd := m.attemptCommit(m.surface.Value())
	m.mode = ModeView
	m.surface.Blur()
	return m, cmd
}

// handleClick activates edit mode on a left click in the preview, except when
// the click lands on a hyperlink. Only hyperlinks are exempt; other
// interactive-looking markup (checkboxes included) activates normally.
func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.linkAt(msg.X, msg.Y) {
		return m, nil
	}
	return m.activate()
}

// linkAt reports whether the preview cell at (x, y) falls inside a markdown
// link span.
func (m Model) linkAt(x, y int) bool {
	lines := m.previewLines()
	if y < 0 || y >= len(lines) {
		return false
	}
	line := lines[y]
	for _, loc := range linkPattern.FindAllStringIndex(line, -1) {
		start := len([]rune(line[:loc[0]]))
		end := len([]rune(line[:loc[1]]))
		if x >= start && x < end {
			return true
		}
	}
	return false
}

// attemptCommit compares normalized candidate and committed values. Equal
// values are a no-op; otherwise the mirror advances immediately so a rapid
// re-activation sees the latest text, and a CommitMsg is emitted for the
// host's persistence hook.
func (m *Model) attemptCommit(candidate string) tea.Cmd {
	next := normalize(candidate)
	if next == normalize(m.committed) {
		return nil
	}
	m.committed = next
	return func() tea.Msg {
		return CommitMsg{Value: next}
	}
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func (m Model) previewLines() []string {
	text := m.committed
	if text == "" {
		return nil
	}
	if m.renderPreview != nil {
		return strings.Split(m.renderPreview(text), "\n")
	}
	return strings.Split(wordwrap.String(text, m.width), "\n")
}

func (m Model) View() string {
	if m.mode == ModeEditing {
		return m.surface.View()
	}

	lines := m.previewLines()
	if len(lines) == 0 {
		return emptyHintStyle.Render("No details. Press enter to add some.")
	}
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}
