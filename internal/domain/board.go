package domain

import (
	"fmt"
	"strings"
)

// Board is the 6x7 grid. Row 0 is the top row, row Rows-1 the bottom row.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

func (b Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// board[0] is the top row, so an empty top cell means the column has room
	return b[0][column] == Empty
}

// LowestEmptyRow returns the row a disk dropped into column would land on.
// ok is false when the column is full or out of range.
func (b Board) LowestEmptyRow(column int) (row int, ok bool) {
	if column < 0 || column >= Columns {
		return -1, false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Drop places player's disk in column and returns the row it landed on.
// The board is left untouched when the move is illegal.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}
	row, ok := b.LowestEmptyRow(column)
	if !ok {
		return -1, ErrColumnFull
	}
	b[row][column] = player
	return row, nil
}

// Clear empties a single cell. Only the search uses it, to take back
// a speculative Drop.
func (b *Board) Clear(row, column int) {
	b[row][column] = Empty
}

func (b Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}

	return true
}

func (b Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b Board) MoveCount() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Validate checks cell values and that no column has a disk floating
// above an empty cell.
func (b Board) Validate() error {
	for c := 0; c < Columns; c++ {
		seenEmpty := false
		for r := Rows - 1; r >= 0; r-- {
			switch b[r][c] {
			case Empty:
				seenEmpty = true
			case Player1, Player2:
				if seenEmpty {
					return fmt.Errorf("%w: gap below row %d column %d", ErrBadBoard, r, c)
				}
			default:
				return fmt.Errorf("%w: cell %d,%d holds %d", ErrBadBoard, r, c, b[r][c])
			}
		}
	}
	return nil
}

// Ints converts the board to the nested-int form used on the wire and in storage.
func (b Board) Ints() [][]int {
	out := make([][]int, Rows)
	for r := range out {
		out[r] = make([]int, Columns)
		for c := range out[r] {
			out[r][c] = int(b[r][c])
		}
	}
	return out
}

// BoardFromInts is the inverse of Ints. The result is validated.
func BoardFromInts(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Rows {
		return b, fmt.Errorf("%w: %d rows", ErrBadBoard, len(cells))
	}
	for r := range cells {
		if len(cells[r]) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns", ErrBadBoard, r, len(cells[r]))
		}
		for c, v := range cells[r] {
			b[r][c] = PlayerID(v)
		}
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// String renders the board top row first, one line per row,
// using '.', 'X' (Player1) and 'O' (Player2).
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			switch b[r][c] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		if r < Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads the String form. Whitespace, '/' and '|' are ignored, so
// "......./......./..." works on a command line as well.
func ParseBoard(s string) (Board, error) {
	var b Board
	i := 0
	for _, ch := range s {
		var p PlayerID
		switch ch {
		case ' ', '\n', '\t', '\r', '/', '|':
			continue
		case '.', '0', '_':
			p = Empty
		case 'X', 'x', '1':
			p = Player1
		case 'O', 'o', '2':
			p = Player2
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q", ErrBadBoard, ch)
		}
		if i >= Rows*Columns {
			return Board{}, fmt.Errorf("%w: more than %d cells", ErrBadBoard, Rows*Columns)
		}
		b[i/Columns][i%Columns] = p
		i++
	}
	if i != Rows*Columns {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", ErrBadBoard, i, Rows*Columns)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}
