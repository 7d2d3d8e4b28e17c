package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckWinAxes(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		row    int
		col    int
		player PlayerID
		want   bool
	}{
		{
			name: "horizontal",
			board: `
				.......
				.......
				.......
				.......
				OOO....
				XXXX...`,
			row: 5, col: 3, player: Player1, want: true,
		},
		{
			name: "horizontal middle of run",
			board: `
				.......
				.......
				.......
				.......
				.OOO...
				.XXXX..`,
			row: 5, col: 2, player: Player1, want: true,
		},
		{
			name: "vertical",
			board: `
				.......
				.......
				O......
				O......
				O.X....
				O.XX...`,
			row: 2, col: 0, player: Player2, want: true,
		},
		{
			name: "diagonal rising",
			board: `
				.......
				.......
				...X...
				..XO...
				.XOO...
				XOOX...`,
			row: 2, col: 3, player: Player1, want: true,
		},
		{
			name: "diagonal falling",
			board: `
				.......
				.......
				O......
				XO.....
				XXO....
				XXXO...`,
			row: 2, col: 0, player: Player2, want: true,
		},
		{
			name: "three only",
			board: `
				.......
				.......
				.......
				.......
				OOO....
				XXX....`,
			row: 5, col: 2, player: Player1, want: false,
		},
		{
			name: "run broken by opponent",
			board: `
				.......
				.......
				.......
				.......
				OOO....
				XXOXX..`,
			row: 5, col: 4, player: Player1, want: false,
		},
		{
			name: "five in a row counts",
			board: `
				.......
				.......
				.......
				.......
				OOOO...
				XXXXX..`,
			row: 5, col: 4, player: Player1, want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.board)
			assert.Equal(t, tc.want, b.CheckWin(tc.row, tc.col, tc.player))
		})
	}
}

func TestCheckWinStopsAtEdges(t *testing.T) {
	// the end of row 4 and the start of row 5 are adjacent in memory only
	b := mustParse(t, `
		.......
		.......
		.......
		.......
		.....XX
		XX...OO`)
	assert.False(t, b.CheckWin(4, 6, Player1))
	assert.False(t, b.CheckWin(5, 0, Player1))
	assert.False(t, b.CheckWin(-1, 0, Player1))
}

func TestHasWinningLine(t *testing.T) {
	empty := NewBoard()
	assert.False(t, empty.HasWinningLine())

	b := mustParse(t, `
		.......
		.......
		......O
		.....OX
		....OXX
		XX.OXXO`)
	assert.True(t, b.HasWinningLine())

	b.Clear(2, 6)
	assert.False(t, b.HasWinningLine())
}
