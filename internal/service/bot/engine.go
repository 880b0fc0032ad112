package bot

import (
	"sync"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

const (
	DEFAULT_INITIAL_DEPTH     = 2
	DEFAULT_ENDGAME_THRESHOLD = 5 // empty cells at or below which instant wins are tried first
)

type Settings struct {
	InitialDepth     int
	EndgameThreshold int
}

func DefaultSettings() Settings {
	return Settings{
		InitialDepth:     DEFAULT_INITIAL_DEPTH,
		EndgameThreshold: DEFAULT_ENDGAME_THRESHOLD,
	}
}

// Decision is what SelectMove picked and how.
type Decision struct {
	domain.Move
	Score     int  `json:"score"`
	Depth     int  `json:"depth"`     // counter value the move was searched with
	Immediate bool `json:"immediate"` // found by the instant-win check, no search
}

// Session owns the escalating search depth for one player. Every call to
// SelectMove searches one ply deeper than the previous one. A Session is safe
// for concurrent use; calls are serialised.
type Session struct {
	mu               sync.Mutex
	depth            int
	endgameThreshold int
}

func NewSession(settings Settings) *Session {
	if settings.InitialDepth <= 0 {
		settings.InitialDepth = DEFAULT_INITIAL_DEPTH
	}
	if settings.EndgameThreshold < 0 {
		settings.EndgameThreshold = DEFAULT_ENDGAME_THRESHOLD
	}
	return &Session{
		depth:            settings.InitialDepth,
		endgameThreshold: settings.EndgameThreshold,
	}
}

// RestoreSession resumes a session whose counter was saved elsewhere.
func RestoreSession(settings Settings, depth int) *Session {
	s := NewSession(settings)
	if depth > 0 {
		s.depth = depth
	}
	return s
}

// Depth is the counter value the next SelectMove call will search with.
func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// SelectMove picks the AI's next cell for the given position. The counter is
// advanced on every call, including the instant-win path and a full board.
func (s *Session) SelectMove(position domain.Position, aiMovesFirst bool) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.depth++ }()

	board := domain.ToDenseBoard(position)
	current, _ := domain.MarkersFor(aiMovesFirst)

	cells := board.EmptyCells()
	if len(cells) == 0 {
		return Decision{Depth: s.depth}, domain.ErrBoardFull
	}

	if len(cells) <= s.endgameThreshold {
		if move, ok := findImmediateWin(position, cells, current); ok {
			return Decision{Move: move, Depth: s.depth, Immediate: true}, nil
		}
	}

	sc := newSearchContext(current, s.depth)
	result := sc.minimax(&board, true, SCORE_NEG_INF, SCORE_POS_INF, s.depth)

	return Decision{Move: result.Move, Score: result.Score, Depth: s.depth}, nil
}

// findImmediateWin tries every empty cell for player and returns the first one
// that completes a line.
func findImmediateWin(position domain.Position, cells []domain.Move, player domain.Marker) (domain.Move, bool) {
	for _, cell := range cells {
		rec := domain.MoveRecord{Direction: [2]int{cell.Row, cell.Col}, Content: player}
		if domain.CheckWin(position.With(rec), domain.Rows, domain.Cols, rec) {
			return cell, true
		}
	}
	return domain.Move{}, false
}
