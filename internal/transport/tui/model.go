// Package tui is the terminal front end: a Bubble Tea model over one game
// session, served locally or over SSH through Wish.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/locale"
	"github.com/iamasit07/vier-gewinnt/internal/service/game"
)

const historyLimit = 10

// snapshotMsg carries a state change pushed by the session, such as the
// computer's move.
type snapshotMsg game.Snapshot

type historyMsg struct {
	games []domain.GameRecord
	err   error
}

// subscription forwards session changes to the program.
type subscription struct {
	updates     chan game.Snapshot
	unsubscribe func()
	once        sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() {
		s.unsubscribe()
		close(s.updates)
	})
}

// Model is the Bubble Tea model of the game screen.
type Model struct {
	session *game.Session
	history game.HistoryRepository
	sub     *subscription

	snap        game.Snapshot
	cursor      int
	confirming  bool
	showHistory bool
	games       []domain.GameRecord
	historyErr  error

	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel attaches a model to session. history may be nil.
func NewModel(session *game.Session, history game.HistoryRepository) Model {
	updates := make(chan game.Snapshot, 16)
	unsubscribe := session.Subscribe(func(s game.Snapshot) {
		// runs under the session lock; never block
		select {
		case updates <- s:
		default:
		}
	})

	return Model{
		session: session,
		history: history,
		sub:     &subscription{updates: updates, unsubscribe: unsubscribe},
		snap:    session.Snapshot(),
		cursor:  domain.Columns / 2,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.sub.updates)
}

// Close detaches the model from its session. Safe to call repeatedly.
func (m Model) Close() {
	m.sub.close()
}

func waitForSnapshot(updates <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

func loadHistory(history game.HistoryRepository, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		games, err := history.ListGames(ctx, sessionID, historyLimit)
		return historyMsg{games: games, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = game.Snapshot(msg)
		return m, waitForSnapshot(m.sub.updates)
	case historyMsg:
		m.games = msg.games
		m.historyErr = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.session.ResetScores(ctx)
			m.confirming = false
		case key.Matches(msg, m.keys.Cancel):
			m.confirming = false
		}
		m.snap = m.session.Snapshot()
		return m, nil
	}

	if m.showHistory {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.History), msg.String() == "esc":
			m.showHistory = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < domain.Columns-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Drop):
		m.session.MakeMove(ctx, m.cursor)
	case key.Matches(msg, m.keys.Column):
		m.cursor = int(msg.String()[0] - '1')
		m.session.MakeMove(ctx, m.cursor)
	case key.Matches(msg, m.keys.Mode):
		m.session.SetMode(ctx, nextMode(m.snap.Mode))
	case key.Matches(msg, m.keys.Difficulty):
		m.session.SetDifficulty(ctx, nextDifficulty(m.snap.Difficulty))
	case key.Matches(msg, m.keys.Language):
		m.session.SetLanguage(ctx, string(nextLanguage(m.snap.Language)))
	case key.Matches(msg, m.keys.NewGame):
		m.session.ResetGame(ctx)
	case key.Matches(msg, m.keys.ResetScores):
		m.confirming = true
	case key.Matches(msg, m.keys.History):
		m.showHistory = true
		m.games = nil
		m.historyErr = nil
		if m.history != nil {
			cmd = loadHistory(m.history, m.session.ID)
		}
	}

	m.snap = m.session.Snapshot()
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

func nextMode(mode domain.Mode) domain.Mode {
	if mode == domain.ModeAI {
		return domain.ModeFriend
	}
	return domain.ModeAI
}

func nextDifficulty(d domain.Difficulty) domain.Difficulty {
	switch d {
	case domain.DifficultyEasy:
		return domain.DifficultyMedium
	case domain.DifficultyMedium:
		return domain.DifficultyHard
	}
	return domain.DifficultyEasy
}

func nextLanguage(lang domain.Language) domain.Language {
	supported := locale.Supported()
	for i, l := range supported {
		if l == lang {
			return supported[(i+1)%len(supported)]
		}
	}
	return supported[0]
}

// Cursor returns the selected column.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) IsQuitting() bool {
	return m.quitting
}
