package bot

import (
	"math/rand"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

// CalculateMoveEasy picks a uniformly random playable column and ignores
// everything else about the position.
func CalculateMoveEasy(board *domain.Board, rng *rand.Rand) int {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return -1
	}
	if rng == nil {
		return validColumns[rand.Intn(len(validColumns))]
	}
	return validColumns[rng.Intn(len(validColumns))]
}
