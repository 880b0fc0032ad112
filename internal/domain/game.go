package domain

// Game is one human-vs-AI match. X always opens.
type Game struct {
	Board       Board
	AIMarker    Marker
	CurrentTurn Marker
	Status      GameStatus
	Winner      Marker
	MoveCount   int
	History     []MoveRecord
}

func NewGame(aiMovesFirst bool) *Game {
	ai, _ := MarkersFor(aiMovesFirst)
	return &Game{
		Board:       NewBoard(),
		AIMarker:    ai,
		CurrentTurn: X,
		Status:      StatusActive,
		Winner:      Empty,
	}
}

func (g *Game) HumanMarker() Marker {
	return g.AIMarker.Opponent()
}

// AIMovesFirst reports whether the AI holds X.
func (g *Game) AIMovesFirst() bool {
	return g.AIMarker == X
}

func (g *Game) MakeMove(player Marker, row, col int) error {
	if g.Status != StatusActive {
		return ErrGameFinished
	}
	if player != g.CurrentTurn {
		return ErrNotYourTurn
	}
	if !InBounds(row, col) {
		return ErrOutOfBounds
	}
	if g.Board[row][col] != Empty {
		return ErrCellOccupied
	}

	g.Board[row][col] = player
	g.MoveCount++
	g.History = append(g.History, MoveRecord{Direction: [2]int{row, col}, Content: player})

	if CheckWinner(&g.Board) == player {
		g.Status = StatusWon
		g.Winner = player
		return nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentTurn = player.Opponent()
	return nil
}

// Abandon ends the game in the AI's favour.
func (g *Game) Abandon() {
	if g.IsFinished() {
		return
	}
	g.Status = StatusAbandoned
	g.Winner = g.AIMarker
}

// Position returns the sparse form the move selector consumes.
func (g *Game) Position() Position {
	return g.Board.ToPosition()
}

func (g *Game) IsFinished() bool {
	return g.Status != StatusActive
}
