package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

func TestForFallsBackToGerman(t *testing.T) {
	assert.Equal(t, "Spieler 1", For(domain.LanguageDE).Player1)
	assert.Equal(t, "Player 1", For(domain.LanguageEN).Player1)
	assert.Equal(t, "Spieler 1", For(domain.Language("fr")).Player1)
}

func TestEveryLanguageIsComplete(t *testing.T) {
	for _, lang := range Supported() {
		l := For(lang)
		for name, v := range map[string]string{
			"player1": l.Player1, "player2": l.Player2, "ai": l.AI,
			"newGame": l.NewGame, "resetScores": l.ResetScores,
			"vsPlayer": l.VsPlayer, "vsAI": l.VsAI,
			"easy": l.Easy, "medium": l.Medium, "hard": l.Hard,
			"confirmReset": l.ConfirmReset, "turn": l.Turn, "next": l.Next,
			"wins": l.Wins, "draw": l.Draw,
			"history": l.History, "noHistory": l.NoHistory, "result": l.Result,
			"moves": l.Moves, "finished": l.Finished, "yes": l.Yes, "no": l.No,
		} {
			assert.NotEmpty(t, v, "%s.%s", lang, name)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Language
		ok   bool
	}{
		{"de", domain.LanguageDE, true},
		{"en", domain.LanguageEN, true},
		{"de-AT", domain.LanguageDE, true},
		{"en_US", domain.LanguageEN, true},
		{"fr", "", false},
		{"", "", false},
		{"not a tag!", "", false},
	}
	for _, tc := range tests {
		got, ok := Normalize(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, domain.LanguageEN, Negotiate("en-GB,en;q=0.9"))
	assert.Equal(t, domain.LanguageDE, Negotiate("de-CH"))
	assert.Equal(t, domain.LanguageDE, Negotiate(""))
}

func TestStatusLines(t *testing.T) {
	de := For(domain.LanguageDE)
	assert.Equal(t, "Spieler 1 ist am Zug", de.TurnStatus(domain.Player1, domain.ModeFriend))
	assert.Equal(t, "Algorithmus ist dran", de.NextStatus(domain.Player2, domain.ModeAI))
	assert.Equal(t, "Spieler 2 gewinnt!", de.WinStatus(domain.Player2, domain.ModeFriend))

	en := For(domain.LanguageEN)
	assert.Equal(t, "Algorithm wins!", en.WinStatus(domain.Player2, domain.ModeAI))
	assert.Equal(t, "Hard", en.DifficultyName(domain.DifficultyHard))
	assert.Equal(t, "vs Algorithm", en.ModeName(domain.ModeAI))
}
