package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Empty maps to Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Mode selects who plays Player2.
type Mode string

const (
	ModeFriend Mode = "friend"
	ModeAI     Mode = "ai"
)

func (m Mode) Valid() bool {
	return m == ModeFriend || m == ModeAI
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Language is a 2-letter display language code.
type Language string

const (
	LanguageDE Language = "de"
	LanguageEN Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageDE || l == LanguageEN
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrColumnFull   Error = "column is full"
	ErrGameFinished Error = "game is finished"
	ErrBadBoard     Error = "board violates gravity or shape"

	// returned by state stores when nothing is saved under a key
	ErrStateNotFound Error = "state not found"
)
