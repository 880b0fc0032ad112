// Package arena plays the move selector against every line an opponent can
// choose and tallies the outcomes.
package arena

import (
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
)

type Opponent string

const (
	// Perfect only follows replies that keep the game-theoretic value
	Perfect Opponent = "perfect"
	// Any follows every legal reply
	Any Opponent = "any"
)

type Config struct {
	Settings bot.Settings
	AIFirst  bool
	Opponent Opponent
	// Verify re-runs every searched decision without pruning and counts
	// disagreements.
	Verify bool
}

type Report struct {
	AIMarker   domain.Marker
	Games      int
	Wins       int
	Draws      int
	Losses     int
	Searches   int
	Mismatches int
	LostBoards []domain.Board
	SampleDraw *domain.Board
}

// solveKey identifies a solved position: the same board has a different
// value depending on who is to move.
type solveKey struct {
	board domain.Board
	turn  domain.Marker
}

type runner struct {
	cfg    Config
	ai     domain.Marker
	memo   map[solveKey]int
	report *Report
}

// Run explores the whole game tree reachable under cfg.
func Run(cfg Config) Report {
	if cfg.Settings == (bot.Settings{}) {
		cfg.Settings = bot.DefaultSettings()
	}
	if cfg.Settings.InitialDepth <= 0 {
		cfg.Settings.InitialDepth = bot.DEFAULT_INITIAL_DEPTH
	}
	if cfg.Opponent == "" {
		cfg.Opponent = Perfect
	}
	ai, _ := domain.MarkersFor(cfg.AIFirst)
	report := Report{AIMarker: ai}
	r := &runner{cfg: cfg, ai: ai, memo: make(map[solveKey]int), report: &report}

	b := domain.NewBoard()
	r.play(&b, domain.X, cfg.Settings.InitialDepth)
	return report
}

func (r *runner) play(b *domain.Board, turn domain.Marker, depth int) {
	switch w := domain.CheckWinner(b); {
	case w == r.ai:
		r.report.Games++
		r.report.Wins++
		return
	case w != domain.Empty:
		r.report.Games++
		r.report.Losses++
		r.report.LostBoards = append(r.report.LostBoards, *b)
		return
	case b.IsFull():
		r.report.Games++
		r.report.Draws++
		if r.report.SampleDraw == nil {
			draw := *b
			r.report.SampleDraw = &draw
		}
		return
	}

	if turn == r.ai {
		r.playAI(b, depth)
		return
	}
	for _, c := range r.replies(b, turn) {
		b.WithMove(c.Row, c.Col, turn, func() {
			r.play(b, turn.Opponent(), depth)
		})
	}
}

func (r *runner) playAI(b *domain.Board, depth int) {
	d, err := bot.RestoreSession(r.cfg.Settings, depth).SelectMove(b.ToPosition(), r.cfg.AIFirst)
	if err != nil {
		return
	}
	if r.cfg.Verify && !d.Immediate {
		r.report.Searches++
		if bot.Analyze(*b, r.ai, depth) != bot.AnalyzeFull(*b, r.ai, depth) {
			r.report.Mismatches++
		}
	}
	b.WithMove(d.Row, d.Col, r.ai, func() {
		r.play(b, r.ai.Opponent(), depth+1)
	})
}

// replies lists the opponent moves to explore, in row-major order
func (r *runner) replies(b *domain.Board, turn domain.Marker) []domain.Move {
	cells := b.EmptyCells()
	if r.cfg.Opponent == Any {
		return cells
	}

	values := make([]int, len(cells))
	best := 0
	for i, c := range cells {
		b.WithMove(c.Row, c.Col, turn, func() {
			values[i] = r.solve(b, turn.Opponent())
		})
		if i == 0 || better(turn, values[i], best) {
			best = values[i]
		}
	}

	kept := make([]domain.Move, 0, len(cells))
	for i, c := range cells {
		if values[i] == best {
			kept = append(kept, c)
		}
	}
	return kept
}

// better reports whether v improves on best for the side to move: X
// maximises the value, O minimises it.
func better(turn domain.Marker, v, best int) bool {
	if turn == domain.X {
		return v > best
	}
	return v < best
}

// solve returns the value of the position under perfect play: 1 when X
// wins, -1 when O wins, 0 for a draw.
func (r *runner) solve(b *domain.Board, turn domain.Marker) int {
	key := solveKey{board: *b, turn: turn}
	if v, ok := r.memo[key]; ok {
		return v
	}

	var value int
	switch w := domain.CheckWinner(b); {
	case w == domain.X:
		value = 1
	case w == domain.O:
		value = -1
	case b.IsFull():
		value = 0
	default:
		first := true
		for _, c := range b.EmptyCells() {
			b.WithMove(c.Row, c.Col, turn, func() {
				v := r.solve(b, turn.Opponent())
				if first || better(turn, v, value) {
					value = v
					first = false
				}
			})
		}
	}

	r.memo[key] = value
	return value
}
