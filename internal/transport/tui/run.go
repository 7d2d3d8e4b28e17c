package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamasit07/vier-gewinnt/internal/service/game"
)

// Run plays session in the current terminal until the player quits.
func Run(session *game.Session, history game.HistoryRepository) error {
	model := NewModel(session, history)
	defer model.Close()

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
