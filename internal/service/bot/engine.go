package bot

import (
	"math/rand"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

// The computer is always Player2 and maximizes; the human is Player1.
const (
	AIPlayer    = domain.Player2
	HumanPlayer = domain.Player1
)

const (
	MediumDepth = 4
	HardDepth   = 6
)

// Depth returns the search depth for difficulty, or 0 for easy.
func Depth(difficulty domain.Difficulty) int {
	switch difficulty {
	case domain.DifficultyHard:
		return HardDepth
	case domain.DifficultyMedium:
		return MediumDepth
	}
	return 0
}

// ChooseMove selects the computer's column for difficulty. The board is
// taken by value, so the caller's copy is never touched. It returns -1 only
// when no column is playable.
func ChooseMove(board domain.Board, difficulty domain.Difficulty, rng *rand.Rand) int {
	switch difficulty {
	case domain.DifficultyEasy:
		return CalculateMoveEasy(&board, rng)
	case domain.DifficultyMedium, domain.DifficultyHard:
		return NewSearcher(&board).BestMove(Depth(difficulty))
	default:
		return NewSearcher(&board).BestMove(MediumDepth)
	}
}

// ScoreColumns reports the root search value of every column at difficulty's
// depth (medium depth for easy, which does not search).
func ScoreColumns(board domain.Board, difficulty domain.Difficulty) [domain.Columns]ColumnScore {
	depth := Depth(difficulty)
	if depth == 0 {
		depth = MediumDepth
	}
	return NewSearcher(&board).ScoreColumns(depth)
}
