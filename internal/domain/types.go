package domain

// Marker identifies a player's piece on the board. The zero value is the
// empty sentinel.
type Marker string

const (
	Empty Marker = ""
	X     Marker = "X"
	O     Marker = "O"
)

// Opponent returns the complementary marker.
func (m Marker) Opponent() Marker {
	if m == X {
		return O
	}
	return X
}

func (m Marker) IsValid() bool {
	return m == X || m == O
}

// MarkersFor derives the AI's marker and its opponent's from whether the AI
// opens the game. X always moves first.
func MarkersFor(aiMovesFirst bool) (current, opponent Marker) {
	if aiMovesFirst {
		return X, O
	}
	return O, X
}

const (
	Rows  = 3
	Cols  = 3
	ToWin = 3
)

const AIName = "BOT"

// to represent the game status
type GameStatus string

const (
	StatusActive    GameStatus = "active"
	StatusWon       GameStatus = "won"
	StatusDraw      GameStatus = "draw"
	StatusAbandoned GameStatus = "abandoned"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrOutOfBounds  Error = "cell is outside the board"
	ErrCellOccupied Error = "cell is already occupied"
	ErrNotYourTurn  Error = "not your turn"
	ErrGameFinished Error = "game is already finished"
	ErrBoardFull    Error = "board is full"
	ErrInvalidMark  Error = "invalid marker"
)
