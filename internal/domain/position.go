package domain

import "fmt"

// Move is a board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveRecord is a single placed marker as the client keeps it.
type MoveRecord struct {
	Direction [2]int `json:"direction"`
	Content   Marker `json:"content"`
}

func (r MoveRecord) Move() Move {
	return Move{Row: r.Direction[0], Col: r.Direction[1]}
}

// Position is the sparse representation of the moves made so far, keyed by
// an arbitrary cell identifier. Order of entries carries no meaning.
type Position map[string]MoveRecord

// CellKey is the key this server uses when it adds records to a Position.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// With returns a copy of p with the record added under its cell key.
func (p Position) With(rec MoveRecord) Position {
	next := make(Position, len(p)+1)
	for k, v := range p {
		next[k] = v
	}
	next[CellKey(rec.Direction[0], rec.Direction[1])] = rec
	return next
}

// ValidatePosition checks what the search core deliberately does not: that
// every record is on the board, carries a real marker and that no cell is
// claimed twice.
func ValidatePosition(p Position) error {
	seen := make(map[Move]bool, len(p))
	for key, rec := range p {
		m := rec.Move()
		if !InBounds(m.Row, m.Col) {
			return fmt.Errorf("record %q: %w", key, ErrOutOfBounds)
		}
		if !rec.Content.IsValid() {
			return fmt.Errorf("record %q: %w", key, ErrInvalidMark)
		}
		if seen[m] {
			return fmt.Errorf("record %q: %w", key, ErrCellOccupied)
		}
		seen[m] = true
	}
	return nil
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}
