package bot

import (
	"math"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

const (
	MINIMAX_WIN  = 1000
	MINIMAX_LOSS = -1000
	MINIMAX_DRAW = 0
)

// ColumnScore is the root search value of one column.
type ColumnScore struct {
	Column int  `json:"column"`
	Legal  bool `json:"legal"`
	Score  int  `json:"score"`
}

// Searcher runs minimax with alpha-beta pruning on a single board that it
// mutates in place. Every speculative disk is taken back before a call
// returns, so the board is unchanged once a search finishes.
type Searcher struct {
	board *domain.Board
	Nodes int
}

func NewSearcher(board *domain.Board) *Searcher {
	return &Searcher{board: board}
}

// BestMove tries every playable column for the computer and returns the one
// with the highest search value. Equal values keep the lowest column.
func (s *Searcher) BestMove(depth int) int {
	bestCol := -1
	bestScore := math.MinInt

	for _, cs := range s.ScoreColumns(depth) {
		if cs.Legal && cs.Score > bestScore {
			bestScore = cs.Score
			bestCol = cs.Column
		}
	}

	return bestCol
}

// ScoreColumns returns the root value of every column, in column order.
// Each column is searched with a fresh window so the values are exact.
func (s *Searcher) ScoreColumns(depth int) [domain.Columns]ColumnScore {
	var scores [domain.Columns]ColumnScore

	for col := 0; col < domain.Columns; col++ {
		scores[col].Column = col
		row, ok := s.board.LowestEmptyRow(col)
		if !ok {
			continue
		}
		s.board[row][col] = AIPlayer
		scores[col].Score = s.minimax(depth, false, math.MinInt, math.MaxInt)
		s.board.Clear(row, col)
		scores[col].Legal = true
	}

	return scores
}

// minimax returns the value of the position for the computer. A line on the
// board always belongs to the side that just moved: when it is the
// computer's turn that side is the human, so the position scores a loss.
func (s *Searcher) minimax(depth int, isMaximizing bool, alpha, beta int) int {
	s.Nodes++

	if depth == 0 {
		return Evaluate(s.board)
	}
	if s.board.HasWinningLine() {
		if isMaximizing {
			return MINIMAX_LOSS
		}
		return MINIMAX_WIN
	}
	if s.board.IsFull() {
		return MINIMAX_DRAW
	}

	if isMaximizing {
		maxEval := math.MinInt
		for col := 0; col < domain.Columns; col++ {
			row, ok := s.board.LowestEmptyRow(col)
			if !ok {
				continue
			}
			s.board[row][col] = AIPlayer
			eval := s.minimax(depth-1, false, alpha, beta)
			s.board.Clear(row, col)

			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt
	for col := 0; col < domain.Columns; col++ {
		row, ok := s.board.LowestEmptyRow(col)
		if !ok {
			continue
		}
		s.board[row][col] = HumanPlayer
		eval := s.minimax(depth-1, true, alpha, beta)
		s.board.Clear(row, col)

		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}
