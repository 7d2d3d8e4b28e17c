package bot

import (
	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

const (
	SCORE_FOUR       = 100
	SCORE_THREE_OPEN = 5
	SCORE_TWO_OPEN   = 2
)

// Evaluate sums evaluateWindow over every horizontal, vertical and diagonal
// run of four cells. Positive favours the computer.
func Evaluate(board *domain.Board) int {
	score := 0
	var window [domain.ToWin]domain.PlayerID

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if col <= domain.Columns-domain.ToWin {
				for i := range window {
					window[i] = board[row][col+i]
				}
				score += evaluateWindow(window)
			}
			if row <= domain.Rows-domain.ToWin {
				for i := range window {
					window[i] = board[row+i][col]
				}
				score += evaluateWindow(window)
			}
			if row <= domain.Rows-domain.ToWin && col <= domain.Columns-domain.ToWin {
				for i := range window {
					window[i] = board[row+i][col+i]
				}
				score += evaluateWindow(window)
			}
			if row <= domain.Rows-domain.ToWin && col >= domain.ToWin-1 {
				for i := range window {
					window[i] = board[row+i][col-i]
				}
				score += evaluateWindow(window)
			}
		}
	}

	return score
}

// evaluateWindow scores one run of four. Windows holding both players are worth nothing.
func evaluateWindow(window [domain.ToWin]domain.PlayerID) int {
	aiCount, playerCount, emptyCount := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case AIPlayer:
			aiCount++
		case HumanPlayer:
			playerCount++
		default:
			emptyCount++
		}
	}

	switch {
	case aiCount == 4:
		return SCORE_FOUR
	case playerCount == 4:
		return -SCORE_FOUR
	case aiCount == 3 && emptyCount == 1:
		return SCORE_THREE_OPEN
	case playerCount == 3 && emptyCount == 1:
		return -SCORE_THREE_OPEN
	case aiCount == 2 && emptyCount == 2:
		return SCORE_TWO_OPEN
	case playerCount == 2 && emptyCount == 2:
		return -SCORE_TWO_OPEN
	}
	return 0
}
