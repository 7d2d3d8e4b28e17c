package game

import (
	"github.com/iamasit07/vier-gewinnt/internal/domain"
	"github.com/iamasit07/vier-gewinnt/internal/locale"
)

// Snapshot is what a renderer needs to draw the game.
type Snapshot struct {
	Board         [][]int           `json:"board"`
	CurrentPlayer domain.PlayerID   `json:"currentPlayer"`
	Status        domain.GameStatus `json:"status"`
	Winner        domain.PlayerID   `json:"winner,omitempty"`
	Outcome       domain.GameStatus `json:"outcome,omitempty"`
	Scores        map[string]int    `json:"scores"`
	Mode          domain.Mode       `json:"gameMode"`
	Difficulty    domain.Difficulty `json:"difficulty"`
	Language      domain.Language   `json:"language"`
	Message       string            `json:"message"`
	Player1Name   string            `json:"player1Name"`
	Player2Name   string            `json:"player2Name"`
	Labels        locale.Labels     `json:"labels"`
	ValidColumns  []int             `json:"validColumns"`
	LastMove      *Move             `json:"lastMove,omitempty"`
	Thinking      bool              `json:"thinking"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	labels := locale.For(s.language)

	var message string
	switch {
	case s.status == statusWin:
		message = labels.WinStatus(s.game.Winner, s.mode)
	case s.outcome == domain.StatusDraw:
		message = labels.Draw
	case s.status == statusNext:
		message = labels.NextStatus(s.game.CurrentPlayer, s.mode)
	default:
		message = labels.TurnStatus(s.game.CurrentPlayer, s.mode)
	}

	snap := Snapshot{
		Board:         s.game.Board.Ints(),
		CurrentPlayer: s.game.CurrentPlayer,
		Status:        s.game.Status,
		Winner:        s.game.Winner,
		Outcome:       s.outcome,
		Scores: map[string]int{
			"1": s.scores[domain.Player1],
			"2": s.scores[domain.Player2],
		},
		Mode:         s.mode,
		Difficulty:   s.difficulty,
		Language:     s.language,
		Message:      message,
		Player1Name:  labels.PlayerName(domain.Player1, s.mode),
		Player2Name:  labels.PlayerName(domain.Player2, s.mode),
		Labels:       labels,
		ValidColumns: s.game.Board.ValidMoves(),
		Thinking:     s.pendingBot != nil,
	}
	if s.game.IsFinished() {
		snap.ValidColumns = []int{}
	}
	if s.lastMove != nil {
		m := *s.lastMove
		snap.LastMove = &m
	}
	return snap
}
