package components

import (
	"github.com/charmbracelet/lipgloss"

	"quill/internal/tui/components/notefield"
)

// ModeIndicatorComponent handles the rendering of the note field mode
// indicator in the footer.
type ModeIndicatorComponent struct {
	mode notefield.Mode
}

// NewModeIndicatorComponent creates a new mode indicator component
func NewModeIndicatorComponent(mode notefield.Mode) *ModeIndicatorComponent {
	return &ModeIndicatorComponent{
		mode: mode,
	}
}

// Render renders the mode indicator with colored background
func (m *ModeIndicatorComponent) Render() string {
	var modeText string
	var modeColor string

	switch m.mode {
	case notefield.ModeView:
		modeText = " VIEW "
		modeColor = "4" // Blue background while browsing
	case notefield.ModeEditing:
		modeText = " EDIT "
		modeColor = "2" // Green background while editing
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(modeColor)).
		Render(modeText)
}

// Width returns the width of the mode indicator
func (m *ModeIndicatorComponent) Width() int {
	switch m.mode {
	case notefield.ModeView:
		return len(" VIEW ")
	case notefield.ModeEditing:
		return len(" EDIT ")
	default:
		return 0
	}
}
