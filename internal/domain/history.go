package domain

import "time"

// GameRecord is a finished game as kept in the history.
type GameRecord struct {
	GameID          string     `json:"gameId"`
	SessionID       string     `json:"-"`
	Mode            Mode       `json:"mode"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
	Winner          PlayerID   `json:"winner"`
	Reason          string     `json:"reason"`
	TotalMoves      int        `json:"totalMoves"`
	DurationSeconds int        `json:"durationSeconds"`
	CreatedAt       time.Time  `json:"createdAt"`
	FinishedAt      time.Time  `json:"finishedAt"`
	Board           [][]int    `json:"board"`
}

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
)
