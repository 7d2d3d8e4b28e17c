package domain

type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

// ResumeGame rebuilds a game from a stored board and player to move. A board
// that already holds a line or is full comes back finished.
func ResumeGame(board Board, current PlayerID) *Game {
	if !current.Valid() {
		current = Player1
	}
	g := &Game{
		Board:         board,
		CurrentPlayer: current,
		Status:        StatusActive,
		MoveCount:     board.MoveCount(),
	}
	if owner := board.LineOwner(); owner != Empty {
		g.Status = StatusWon
		g.Winner = owner
	} else if board.IsFull() {
		g.Status = StatusDraw
	}
	return g
}

// MakeMove drops a disk for the current player. A win is checked before a
// draw, and the turn only passes on while the game stays active.
func (g *Game) MakeMove(column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}

	if !g.Board.IsValidMove(column) {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Drop(column, g.CurrentPlayer)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if g.Board.CheckWin(row, column, g.CurrentPlayer) {
		g.Status = StatusWon
		g.Winner = g.CurrentPlayer
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Opponent()

	return row, nil
}

func (g *Game) Reset() {
	*g = *NewGame()
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
