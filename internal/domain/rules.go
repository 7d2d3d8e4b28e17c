package domain

// axes holds one direction per line through a cell; the opposite
// direction is covered by negating it.
var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// CheckWin reports whether player has ToWin or more in a row on any axis
// through (row, column). It only looks at lines through that cell, so call it
// with the player who just moved there, before the turn advances.
func (b *Board) CheckWin(row, column int, player PlayerID) bool {
	if !inBounds(row, column) || player == Empty {
		return false
	}
	for _, axis := range axes {
		count := 1 +
			b.CountDiskInDirection(row, column, axis[0], axis[1], player) +
			b.CountDiskInDirection(row, column, -axis[0], -axis[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction, stopping at the edge
func (b *Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for inBounds(r, c) && b[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// HasWinningLine scans every occupied cell for a finished line of its owner.
func (b *Board) HasWinningLine() bool {
	return b.LineOwner() != Empty
}

// LineOwner returns the owner of the first finished line found, or Empty.
func (b *Board) LineOwner() PlayerID {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if p := b[r][c]; p != Empty && b.CheckWin(r, c, p) {
				return p
			}
		}
	}
	return Empty
}
