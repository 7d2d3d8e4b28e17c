package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

func TestEncodeStateFormat(t *testing.T) {
	st := DefaultState()
	st.Mode = domain.ModeAI
	st.Scores[domain.Player2] = 5
	st.Language = domain.LanguageEN
	_, err := st.Board.Drop(3, domain.Player1)
	require.NoError(t, err)
	st.CurrentPlayer = domain.Player2

	data, err := EncodeState(st)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"gameMode": "ai",
		"difficulty": "hard",
		"scores": {"1": 0, "2": 5},
		"language": "en",
		"board": [
			[0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0],
			[0,0,0,1,0,0,0]
		],
		"currentPlayer": 2
	}`, string(data))

	decoded, fallbacks := DecodeState(data)
	assert.Empty(t, fallbacks)
	assert.Equal(t, st, decoded)
}

func TestDecodeStateFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		fallbacks []string
		check     func(t *testing.T, st State)
	}{
		{
			name:      "not json",
			input:     `{{{`,
			fallbacks: []string{"*"},
			check: func(t *testing.T, st State) {
				assert.Equal(t, DefaultState(), st)
			},
		},
		{
			name:      "empty object",
			input:     `{}`,
			fallbacks: []string{"gameMode", "difficulty", "scores", "language", "board", "currentPlayer"},
			check: func(t *testing.T, st State) {
				assert.Equal(t, DefaultState(), st)
			},
		},
		{
			name:      "unknown enum values",
			input:     `{"gameMode":"online","difficulty":"insane","scores":{"1":2,"2":1},"language":"fr","board":null,"currentPlayer":3}`,
			fallbacks: []string{"gameMode", "difficulty", "language", "board", "currentPlayer"},
			check: func(t *testing.T, st State) {
				assert.Equal(t, domain.ModeFriend, st.Mode)
				assert.Equal(t, domain.DifficultyHard, st.Difficulty)
				assert.Equal(t, 2, st.Scores[domain.Player1])
				assert.Equal(t, 1, st.Scores[domain.Player2])
				assert.Equal(t, domain.LanguageDE, st.Language)
				assert.Equal(t, domain.Player1, st.CurrentPlayer)
			},
		},
		{
			name:      "floating disk",
			input:     `{"gameMode":"ai","difficulty":"easy","scores":{"1":0,"2":0},"language":"en","currentPlayer":1,"board":[[1,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0]]}`,
			fallbacks: []string{"board"},
			check: func(t *testing.T, st State) {
				assert.Equal(t, domain.ModeAI, st.Mode)
				assert.Equal(t, domain.DifficultyEasy, st.Difficulty)
				assert.Equal(t, domain.NewBoard(), st.Board)
			},
		},
		{
			name:      "wrong types",
			input:     `{"gameMode":1,"difficulty":"medium","scores":"many","language":"en","board":"x","currentPlayer":"2"}`,
			fallbacks: []string{"gameMode", "scores", "board", "currentPlayer"},
			check: func(t *testing.T, st State) {
				assert.Equal(t, domain.DifficultyMedium, st.Difficulty)
				assert.Equal(t, domain.LanguageEN, st.Language)
				assert.Equal(t, NewScores(), st.Scores)
			},
		},
		{
			name:      "negative score ignored",
			input:     `{"gameMode":"friend","difficulty":"hard","scores":{"1":-4,"2":9},"language":"de","board":[[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0]],"currentPlayer":2}`,
			fallbacks: nil,
			check: func(t *testing.T, st State) {
				assert.Equal(t, 0, st.Scores[domain.Player1])
				assert.Equal(t, 9, st.Scores[domain.Player2])
				assert.Equal(t, domain.Player2, st.CurrentPlayer)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, fallbacks := DecodeState([]byte(tt.input))
			assert.Equal(t, tt.fallbacks, fallbacks)
			tt.check(t, st)
		})
	}
}
