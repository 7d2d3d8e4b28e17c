package game

import (
	"encoding/json"
	"strconv"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

// Scores counts wins per player.
type Scores map[domain.PlayerID]int

func NewScores() Scores {
	return Scores{domain.Player1: 0, domain.Player2: 0}
}

func (s Scores) Clone() Scores {
	out := NewScores()
	for k, v := range s {
		out[k] = v
	}
	return out
}

// State is everything a player keeps across reloads.
type State struct {
	Mode          domain.Mode
	Difficulty    domain.Difficulty
	Scores        Scores
	Language      domain.Language
	Board         domain.Board
	CurrentPlayer domain.PlayerID
}

func DefaultState() State {
	return State{
		Mode:          domain.ModeFriend,
		Difficulty:    domain.DifficultyHard,
		Scores:        NewScores(),
		Language:      domain.LanguageDE,
		Board:         domain.NewBoard(),
		CurrentPlayer: domain.Player1,
	}
}

// storedState is the persisted record. Field names are part of the format.
type storedState struct {
	GameMode      domain.Mode       `json:"gameMode"`
	Difficulty    domain.Difficulty `json:"difficulty"`
	Scores        map[string]int    `json:"scores"`
	Language      domain.Language   `json:"language"`
	Board         [][]int           `json:"board"`
	CurrentPlayer domain.PlayerID   `json:"currentPlayer"`
}

func EncodeState(s State) ([]byte, error) {
	return json.Marshal(storedState{
		GameMode:   s.Mode,
		Difficulty: s.Difficulty,
		Scores: map[string]int{
			"1": s.Scores[domain.Player1],
			"2": s.Scores[domain.Player2],
		},
		Language:      s.Language,
		Board:         s.Board.Ints(),
		CurrentPlayer: s.CurrentPlayer,
	})
}

// DecodeState never fails: every field that is missing or unusable keeps its
// default. The names of the fields that fell back are returned for logging.
func DecodeState(data []byte) (State, []string) {
	state := DefaultState()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return state, []string{"*"}
	}

	var fallbacks []string
	decode := func(name string, into any) bool {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			fallbacks = append(fallbacks, name)
			return false
		}
		if err := json.Unmarshal(raw, into); err != nil {
			fallbacks = append(fallbacks, name)
			return false
		}
		return true
	}
	reject := func(name string) {
		fallbacks = append(fallbacks, name)
	}

	var mode domain.Mode
	if decode("gameMode", &mode) {
		if mode.Valid() {
			state.Mode = mode
		} else {
			reject("gameMode")
		}
	}

	var difficulty domain.Difficulty
	if decode("difficulty", &difficulty) {
		if difficulty.Valid() {
			state.Difficulty = difficulty
		} else {
			reject("difficulty")
		}
	}

	var scores map[string]int
	if decode("scores", &scores) {
		for _, p := range []domain.PlayerID{domain.Player1, domain.Player2} {
			if n, ok := scores[strconv.Itoa(int(p))]; ok && n >= 0 {
				state.Scores[p] = n
			}
		}
	}

	var language domain.Language
	if decode("language", &language) {
		if language.Valid() {
			state.Language = language
		} else {
			reject("language")
		}
	}

	var cells [][]int
	if decode("board", &cells) {
		if board, err := domain.BoardFromInts(cells); err == nil {
			state.Board = board
		} else {
			reject("board")
		}
	}

	var current domain.PlayerID
	if decode("currentPlayer", &current) {
		if current.Valid() {
			state.CurrentPlayer = current
		} else {
			reject("currentPlayer")
		}
	}

	return state, fallbacks
}
