package websocket

import "github.com/iamasit07/vier-gewinnt/internal/service/game"

// Client → server frame types.
const (
	TypeMakeMove      = "make_move"
	TypeSetMode       = "set_mode"
	TypeSetDifficulty = "set_difficulty"
	TypeSetLanguage   = "set_language"
	TypeResetGame     = "reset_game"
	TypeResetScores   = "reset_scores"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
}

type ServerMessage struct {
	Type    string         `json:"type"`
	State   *game.Snapshot `json:"state,omitempty"`
	Message string         `json:"message,omitempty"`
}

func stateMessage(s game.Snapshot) ServerMessage {
	return ServerMessage{Type: "state", State: &s}
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: "error", Message: msg}
}
