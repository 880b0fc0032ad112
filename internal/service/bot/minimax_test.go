package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

func TestAnalyzeEmptyBoardOpensCenter(t *testing.T) {
	b := domain.NewBoard()
	res := Analyze(b, x, DEFAULT_INITIAL_DEPTH)

	if !res.HasMove || res.Move != (domain.Move{Row: 1, Col: 1}) {
		t.Fatalf("expected center opening, got %+v", res)
	}
	if res.Score != 14 {
		t.Fatalf("expected score 14, got %d", res.Score)
	}
}

func TestAnalyzeTakesWin(t *testing.T) {
	b := domain.Board{
		{x, x, e},
		{o, o, e},
		{e, e, e},
	}
	res := Analyze(b, x, 2)
	if res.Move != (domain.Move{Row: 0, Col: 2}) {
		t.Fatalf("expected (0,2), got %+v", res)
	}
	if res.Score != 959 {
		t.Fatalf("expected score 959, got %d", res.Score)
	}
}

func TestAnalyzeBlocks(t *testing.T) {
	b := domain.Board{
		{o, o, e},
		{e, x, e},
		{e, e, e},
	}
	res := Analyze(b, x, 3)
	if res.Move != (domain.Move{Row: 0, Col: 2}) || res.Score != 59 {
		t.Fatalf("expected block at (0,2) scoring 59, got %+v", res)
	}

	// the classic corner trap: O must answer on an edge
	trap := domain.Board{
		{x, e, e},
		{e, o, e},
		{e, e, x},
	}
	res = Analyze(trap, o, 3)
	if res.Move != (domain.Move{Row: 0, Col: 1}) {
		t.Fatalf("expected edge reply (0,1), got %+v", res)
	}
}

func TestAnalyzeTieBreakRowMajor(t *testing.T) {
	// All four corners score the same against a center opening; the first
	// one enumerated wins.
	b := domain.Board{
		{e, e, e},
		{e, x, e},
		{e, e, e},
	}
	for _, depth := range []int{2, 3} {
		res := Analyze(b, o, depth)
		if res.Move != (domain.Move{Row: 0, Col: 0}) {
			t.Fatalf("depth %d: expected (0,0), got %+v", depth, res)
		}
	}
	if res := Analyze(b, o, 2); res.Score != -127 {
		t.Fatalf("expected tied corner score -127, got %d", res.Score)
	}
}

func TestAnalyzeLeaves(t *testing.T) {
	won := domain.Board{
		{x, x, x},
		{o, o, e},
		{e, e, e},
	}
	res := Analyze(won, o, 4)
	if res.HasMove {
		t.Fatalf("expected no move on a decided board, got %+v", res)
	}
	if res.Score != Evaluate(&won, o, 4) {
		t.Fatalf("expected static score, got %d", res.Score)
	}

	res = Analyze(domain.NewBoard(), x, 0)
	if res.HasMove || res.Score != 0 {
		t.Fatalf("expected static leaf at depth 0, got %+v", res)
	}
}

func TestAnalyzeDoesNotMutate(t *testing.T) {
	b := domain.Board{
		{x, e, e},
		{e, o, e},
		{e, e, e},
	}
	before := b
	sc := newSearchContext(x, 4)
	sc.minimax(&b, true, SCORE_NEG_INF, SCORE_POS_INF, 4)
	if b != before {
		t.Fatalf("search left the board changed:\n%s", b.String())
	}
}

// randomBoard plays n alternating random moves from X, stopping early if
// someone wins.
func randomBoard(r *rand.Rand, n int) domain.Board {
	b := domain.NewBoard()
	turn := x
	for i := 0; i < n; i++ {
		cells := b.EmptyCells()
		if len(cells) == 0 || domain.IsGameOver(&b) {
			break
		}
		c := cells[r.Intn(len(cells))]
		b[c.Row][c.Col] = turn
		turn = turn.Opponent()
	}
	return b
}

func TestAlphaBetaMatchesFullSearch(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	checked := 0
	for n := 0; n < 8; n++ {
		for i := 0; i < 25; i++ {
			b := randomBoard(r, n)
			if domain.IsGameOver(&b) || b.IsFull() {
				continue
			}
			for depth := 1; depth <= 5; depth++ {
				for _, ai := range []domain.Marker{x, o} {
					pruned := Analyze(b, ai, depth)
					full := AnalyzeFull(b, ai, depth)
					if pruned != full {
						t.Fatalf("depth %d ai %s: pruned %+v != full %+v\n%s", depth, ai, pruned, full, b.String())
					}
					checked++
				}
			}
		}
	}
	if checked == 0 {
		t.Fatalf("no positions checked")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	b := domain.Board{
		{e, e, e},
		{e, e, o},
		{x, e, e},
	}
	first := Analyze(b, x, 5)
	for i := 0; i < 10; i++ {
		if got := Analyze(b, x, 5); got != first {
			t.Fatalf("run %d: expected %+v, got %+v", i, first, got)
		}
	}
}
