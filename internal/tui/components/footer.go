package components

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quill/internal/tui/components/notefield"
)

// FooterComponent handles the rendering of the status bar footer
type FooterComponent struct {
	mode   notefield.Mode
	width  int
	dbPath string
	status string
}

// NewFooterComponent creates a new footer component
func NewFooterComponent(mode notefield.Mode, width int) *FooterComponent {
	return &FooterComponent{
		mode:  mode,
		width: width,
	}
}

// UpdateStatus updates the database path and status message shown in the bar.
func (f *FooterComponent) UpdateStatus(dbPath, status string) {
	f.dbPath = dbPath
	f.status = status
}

// Render renders the complete footer with mode indicator and status bar
func (f *FooterComponent) Render() string {
	modeIndicator := NewModeIndicatorComponent(f.mode)
	modeIndicatorRendered := modeIndicator.Render()

	remainingWidth := f.width - modeIndicator.Width()
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	dbPath := f.dbPath
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(dbPath, home) {
		dbPath = "~" + dbPath[len(home):]
	}

	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Background(lipgloss.Color("236"))

	separator := barStyle.Render("   ")
	composedFooter := barStyle.Render("quill") + separator + barStyle.Render(dbPath)
	if f.status != "" {
		composedFooter += separator + barStyle.Render(f.status)
	}

	paddingNeeded := remainingWidth - lipgloss.Width(composedFooter) - 2
	if paddingNeeded > 0 {
		composedFooter += barStyle.Render(strings.Repeat(" ", paddingNeeded))
	}

	mainFooter := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Width(remainingWidth).
		Padding(0, 1).
		Render(composedFooter)

	return modeIndicatorRendered + mainFooter
}
