package bot

import (
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

const (
	LINE_BASE       = 10 // each line scores LINE_BASE^pieces
	CORNER_WEIGHT   = 5
	CENTER_WEIGHT   = 10
	PARITY_BONUS    = 50
	PARITY_MIN_DIFF = 2
)

// LineProfile counts one player's pieces along every line in domain.Lines
// order, plus corner and center occupancy.
type LineProfile struct {
	Lines   [len(domain.Lines)]int
	Corners int
	Center  int
}

func buildProfile(board *domain.Board, player domain.Marker) LineProfile {
	var p LineProfile
	for i, line := range domain.Lines {
		for _, cell := range line {
			if board.At(cell) == player {
				p.Lines[i]++
			}
		}
	}
	for _, cell := range domain.Corners {
		if board.At(cell) == player {
			p.Corners++
		}
	}
	if board.At(domain.Center) == player {
		p.Center = 1
	}
	return p
}

// lineScore rewards fuller lines exponentially. Empty lines still count 1.
func (p LineProfile) lineScore() int {
	score := 0
	for _, n := range p.Lines {
		score += pow(LINE_BASE, n)
	}
	return score + CORNER_WEIGHT*p.Corners + CENTER_WEIGHT*p.Center
}

// parityBonus compares the two profiles line by line. On an even session
// depth a line where the AI leads by two or more is worth a bonus; on an odd
// one a line where the opponent leads by two or more costs the same amount.
func parityBonus(current, opponent LineProfile, sessionDepth int) int {
	even := sessionDepth%2 == 0
	for i := range current.Lines {
		diff := current.Lines[i] - opponent.Lines[i]
		if even && diff >= PARITY_MIN_DIFF {
			return PARITY_BONUS
		}
		if !even && diff <= -PARITY_MIN_DIFF {
			return -PARITY_BONUS
		}
	}
	return 0
}

// Evaluate scores the board from ai's point of view; higher is better for ai.
// sessionDepth is the session counter, not the depth left in the search.
func Evaluate(board *domain.Board, ai domain.Marker, sessionDepth int) int {
	current := buildProfile(board, ai)
	opponent := buildProfile(board, ai.Opponent())

	return current.lineScore() + parityBonus(current, opponent, sessionDepth) - opponent.lineScore()
}

func pow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
