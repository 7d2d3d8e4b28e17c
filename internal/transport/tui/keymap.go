package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Drop        key.Binding
	Column      key.Binding
	Mode        key.Binding
	Difficulty  key.Binding
	Language    key.Binding
	NewGame     key.Binding
	ResetScores key.Binding
	History     key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Drop, k.Column, k.NewGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Drop, k.Column},
		{k.Mode, k.Difficulty, k.Language},
		{k.NewGame, k.ResetScores, k.History, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Drop: key.NewBinding(
			key.WithKeys("enter", " ", "down"),
			key.WithHelp("enter", "drop"),
		),
		Column: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "drop in column"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "difficulty"),
		),
		Language: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "language"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		ResetScores: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset scores"),
		),
		History: key.NewBinding(
			key.WithKeys("h", "tab"),
			key.WithHelp("h", "history"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "j", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
