package domain

// Board is the dense 3x3 grid. Row 0 is the top row.
type Board [Rows][Cols]Marker

// Lines lists the eight winning triples: rows top to bottom, columns left to
// right, then the main and anti diagonal. Evaluation and win detection both
// depend on this order.
var Lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

var Corners = [4]Move{{0, 0}, {0, 2}, {2, 0}, {2, 2}}

var Center = Move{1, 1}

func NewBoard() Board {
	return Board{}
}

// ToDenseBoard writes every record of the position onto an empty grid.
// Coordinates are trusted; see ValidatePosition.
func ToDenseBoard(p Position) Board {
	board := NewBoard()
	for _, rec := range p {
		board[rec.Direction[0]][rec.Direction[1]] = rec.Content
	}
	return board
}

// ToPosition is the inverse of ToDenseBoard, keyed with CellKey.
func (b *Board) ToPosition() Position {
	p := make(Position)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] != Empty {
				p[CellKey(row, col)] = MoveRecord{Direction: [2]int{row, col}, Content: b[row][col]}
			}
		}
	}
	return p
}

func (b *Board) At(m Move) Marker {
	return b[m.Row][m.Col]
}

// EmptyCells enumerates free cells in row-major order.
func (b *Board) EmptyCells() []Move {
	cells := make([]Move, 0, Rows*Cols)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] == Empty {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}
	return cells
}

func (b *Board) IsFull() bool {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] == Empty {
				return false
			}
		}
	}
	return true
}

func (b *Board) Count() int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

// WithMove places m at (row, col), runs fn and restores the previous cell
// content when fn returns or panics.
func (b *Board) WithMove(row, col int, m Marker, fn func()) {
	prev := b[row][col]
	b[row][col] = m
	defer func() { b[row][col] = prev }()
	fn()
}

// String renders the board one row per line with '.' for empty cells.
func (b *Board) String() string {
	out := make([]byte, 0, Rows*(Cols+1))
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] == Empty {
				out = append(out, '.')
			} else {
				out = append(out, b[row][col]...)
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
