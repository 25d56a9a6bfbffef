package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/assist"
	"quill/internal/store"
)

// Run starts the workspace TUI and blocks until the user quits.
func Run(st *store.Store, assistant *assist.Assistant) error {
	program := tea.NewProgram(
		NewModel(st, assistant),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
