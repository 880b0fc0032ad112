package bot

import (
	"math"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

const (
	SCORE_NEG_INF = math.MinInt32
	SCORE_POS_INF = math.MaxInt32
)

// Result is a search node outcome. HasMove is false at leaves, where only the
// static score is known.
type Result struct {
	Move    domain.Move `json:"move"`
	HasMove bool        `json:"hasMove"`
	Score   int         `json:"score"`
}

// searchContext carries what the evaluator needs at every node so the search
// has no package-level state.
type searchContext struct {
	current      domain.Marker
	opponent     domain.Marker
	sessionDepth int
}

func newSearchContext(ai domain.Marker, sessionDepth int) *searchContext {
	return &searchContext{
		current:      ai,
		opponent:     ai.Opponent(),
		sessionDepth: sessionDepth,
	}
}

func (sc *searchContext) evaluate(board *domain.Board) Result {
	return Result{Score: Evaluate(board, sc.current, sc.sessionDepth)}
}

func (sc *searchContext) isLeaf(board *domain.Board, cells []domain.Move, depth int) bool {
	return depth == 0 || domain.IsGameOver(board) || len(cells) == 0
}

// minimax implements the minimax algorithm with alpha-beta pruning. The board
// is mutated in place through WithMove and is unchanged on return.
func (sc *searchContext) minimax(board *domain.Board, isMaximizing bool, alpha, beta, depth int) Result {
	cells := board.EmptyCells()
	if sc.isLeaf(board, cells, depth) {
		return sc.evaluate(board)
	}

	var best Result
	if isMaximizing {
		best.Score = SCORE_NEG_INF
		for _, cell := range cells {
			var child Result
			board.WithMove(cell.Row, cell.Col, sc.current, func() {
				child = sc.minimax(board, false, alpha, beta, depth-1)
			})
			child.Move, child.HasMove = cell, true

			// strict comparison keeps the first cell on ties
			if child.Score > best.Score {
				best = child
			}
			alpha = max(alpha, best.Score)
			if alpha >= beta {
				break // Beta cutoff
			}
		}
	} else {
		best.Score = SCORE_POS_INF
		for _, cell := range cells {
			var child Result
			board.WithMove(cell.Row, cell.Col, sc.opponent, func() {
				child = sc.minimax(board, true, alpha, beta, depth-1)
			})
			child.Move, child.HasMove = cell, true

			if child.Score < best.Score {
				best = child
			}
			beta = min(beta, best.Score)
			if alpha >= beta {
				break // Alpha cutoff
			}
		}
	}

	if !best.HasMove {
		return sc.evaluate(board)
	}
	return best
}

// fullMinimax is the same search without pruning. Used to check that pruning
// never changes the chosen move or its score.
func (sc *searchContext) fullMinimax(board *domain.Board, isMaximizing bool, depth int) Result {
	cells := board.EmptyCells()
	if sc.isLeaf(board, cells, depth) {
		return sc.evaluate(board)
	}

	best := Result{Score: SCORE_POS_INF}
	marker := sc.opponent
	if isMaximizing {
		best.Score = SCORE_NEG_INF
		marker = sc.current
	}

	for _, cell := range cells {
		var child Result
		board.WithMove(cell.Row, cell.Col, marker, func() {
			child = sc.fullMinimax(board, !isMaximizing, depth-1)
		})
		child.Move, child.HasMove = cell, true

		if (isMaximizing && child.Score > best.Score) || (!isMaximizing && child.Score < best.Score) {
			best = child
		}
	}

	if !best.HasMove {
		return sc.evaluate(board)
	}
	return best
}

// Analyze runs the pruned search for ai on a copy of board, using depth both
// as the search horizon and as the session counter seen by the evaluator.
func Analyze(board domain.Board, ai domain.Marker, depth int) Result {
	sc := newSearchContext(ai, depth)
	return sc.minimax(&board, true, SCORE_NEG_INF, SCORE_POS_INF, depth)
}

// AnalyzeFull is Analyze without alpha-beta pruning.
func AnalyzeFull(board domain.Board, ai domain.Marker, depth int) Result {
	sc := newSearchContext(ai, depth)
	return sc.fullMinimax(&board, true, depth)
}
