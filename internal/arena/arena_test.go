package arena

import (
	"testing"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
)

func TestSolveEmptyBoardIsDraw(t *testing.T) {
	r := &runner{memo: make(map[solveKey]int)}
	b := domain.NewBoard()
	if v := r.solve(&b, domain.X); v != 0 {
		t.Fatalf("expected tic-tac-toe to be a draw, got %d", v)
	}

	xToWin := domain.Board{
		{domain.X, domain.X, domain.Empty},
		{domain.O, domain.O, domain.Empty},
		{domain.Empty, domain.Empty, domain.Empty},
	}
	if v := r.solve(&xToWin, domain.X); v != 1 {
		t.Fatalf("expected X to win, got %d", v)
	}

	oToWin := domain.Board{
		{domain.O, domain.O, domain.Empty},
		{domain.X, domain.X, domain.Empty},
		{domain.X, domain.Empty, domain.Empty},
	}
	if v := r.solve(&oToWin, domain.O); v != -1 {
		t.Fatalf("expected O to win when on move, got %d", v)
	}
}

func TestSolveDependsOnSideToMove(t *testing.T) {
	r := &runner{memo: make(map[solveKey]int)}
	// both sides have two in a row, so the side to move decides the value
	b := domain.Board{
		{domain.X, domain.X, domain.Empty},
		{domain.O, domain.O, domain.Empty},
		{domain.X, domain.O, domain.Empty},
	}
	if v := r.solve(&b, domain.X); v != 1 {
		t.Fatalf("expected X to win on move, got %d", v)
	}
	if v := r.solve(&b, domain.O); v != -1 {
		t.Fatalf("expected O to win on move after solving for X, got %d", v)
	}
}

func TestRunNeverLoses(t *testing.T) {
	for _, opp := range []Opponent{Perfect, Any} {
		for _, aiFirst := range []bool{true, false} {
			rep := Run(Config{Settings: bot.DefaultSettings(), AIFirst: aiFirst, Opponent: opp, Verify: true})
			if rep.Losses != 0 {
				t.Fatalf("%s aiFirst %v: %d losses, first:\n%s", opp, aiFirst, rep.Losses, rep.LostBoards[0].String())
			}
			if rep.Games != rep.Wins+rep.Draws {
				t.Fatalf("%s aiFirst %v: tallies do not add up: %+v", opp, aiFirst, rep)
			}
			if rep.Mismatches != 0 || rep.Searches == 0 {
				t.Fatalf("%s aiFirst %v: %d of %d searches disagreed", opp, aiFirst, rep.Mismatches, rep.Searches)
			}
		}
	}
}

func TestRunPerfectOpponentDraws(t *testing.T) {
	rep := Run(Config{Settings: bot.Settings{InitialDepth: 4, EndgameThreshold: bot.DEFAULT_ENDGAME_THRESHOLD}, AIFirst: true})
	if rep.Wins != 0 || rep.Draws == 0 || rep.SampleDraw == nil {
		t.Fatalf("expected only draws against perfect play, got %+v", rep)
	}
	if rep.AIMarker != domain.X {
		t.Fatalf("expected the AI on X, got %s", rep.AIMarker)
	}
}
