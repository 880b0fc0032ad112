package domain

import "testing"

func TestCheckWinnerAllLines(t *testing.T) {
	for i, line := range Lines {
		for _, m := range []Marker{X, O} {
			var b Board
			// noise off the line so only the triple decides
			for _, cell := range b.EmptyCells() {
				onLine := cell == line[0] || cell == line[1] || cell == line[2]
				if !onLine && (cell.Row+cell.Col)%2 == 0 {
					b[cell.Row][cell.Col] = m.Opponent()
				}
			}
			for _, cell := range line {
				b[cell.Row][cell.Col] = m
			}
			if got := CheckWinner(&b); got != m {
				t.Fatalf("line %d marker %s: expected winner %s, got %q\n%s", i, m, m, got, b.String())
			}
			if !IsGameOver(&b) {
				t.Fatalf("line %d marker %s: expected game over", i, m)
			}
		}
	}
}

func TestCheckWinnerNoLine(t *testing.T) {
	b := Board{
		{X, O, X},
		{X, O, O},
		{O, X, X},
	}
	if got := CheckWinner(&b); got != Empty {
		t.Fatalf("expected no winner, got %q", got)
	}
	if IsGameOver(&b) {
		t.Fatalf("expected game not over")
	}

	empty := NewBoard()
	if got := CheckWinner(&empty); got != Empty {
		t.Fatalf("expected no winner on empty board, got %q", got)
	}
}

func TestCheckWinnerScanOrder(t *testing.T) {
	// Unreachable in play, but the first line in scan order must decide.
	rows := Board{
		{O, O, O},
		{Empty, Empty, Empty},
		{X, X, X},
	}
	if got := CheckWinner(&rows); got != O {
		t.Fatalf("expected top row winner O, got %q", got)
	}

	cols := Board{
		{X, Empty, O},
		{X, Empty, O},
		{X, Empty, O},
	}
	if got := CheckWinner(&cols); got != X {
		t.Fatalf("expected left column winner X, got %q", got)
	}
}

func TestCheckWinThroughLastMove(t *testing.T) {
	p := Position{
		"a": {Direction: [2]int{0, 0}, Content: X},
		"b": {Direction: [2]int{0, 1}, Content: X},
		"c": {Direction: [2]int{1, 0}, Content: O},
		"d": {Direction: [2]int{1, 1}, Content: O},
	}

	win := MoveRecord{Direction: [2]int{0, 2}, Content: X}
	if !CheckWin(p.With(win), Rows, Cols, win) {
		t.Fatalf("expected (0,2) to win for X")
	}

	block := MoveRecord{Direction: [2]int{1, 2}, Content: X}
	if CheckWin(p.With(block), Rows, Cols, block) {
		t.Fatalf("expected (1,2) not to win for X")
	}

	oWin := MoveRecord{Direction: [2]int{1, 2}, Content: O}
	if !CheckWin(p.With(oWin), Rows, Cols, oWin) {
		t.Fatalf("expected (1,2) to win for O")
	}
}

func TestCheckWinDiagonals(t *testing.T) {
	p := Position{
		"a": {Direction: [2]int{0, 2}, Content: O},
		"b": {Direction: [2]int{1, 1}, Content: O},
	}
	last := MoveRecord{Direction: [2]int{2, 0}, Content: O}
	if !CheckWin(p, Rows, Cols, last) {
		t.Fatalf("expected anti diagonal win")
	}

	p = Position{
		"a": {Direction: [2]int{0, 0}, Content: X},
		"b": {Direction: [2]int{2, 2}, Content: X},
	}
	last = MoveRecord{Direction: [2]int{1, 1}, Content: X}
	if !CheckWin(p, Rows, Cols, last) {
		t.Fatalf("expected main diagonal win through the center")
	}
}

func TestCheckWinOutOfRange(t *testing.T) {
	last := MoveRecord{Direction: [2]int{3, 0}, Content: X}
	if CheckWin(Position{}, Rows, Cols, last) {
		t.Fatalf("expected false for a move outside the grid")
	}
}
