package domain

import "time"

type Player struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsGuest      bool      `json:"is_guest"`
	GamesPlayed  int       `json:"games_played"`
	GamesWon     int       `json:"games_won"`
	GamesDrawn   int       `json:"games_drawn"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Player) Losses() int {
	return p.GamesPlayed - p.GamesWon - p.GamesDrawn
}

// GameRecord is a finished game as it is persisted.
type GameRecord struct {
	GameID          string    `json:"game_id"`
	PlayerID        int64     `json:"player_id"`
	PlayerUsername  string    `json:"player_username"`
	AIMarker        Marker    `json:"ai_marker"`
	Winner          Marker    `json:"winner"`
	Reason          string    `json:"reason"`
	TotalMoves      int       `json:"total_moves"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Board           Board     `json:"board_state"`
}

// Result is the outcome from the human player's side.
func (r *GameRecord) Result() string {
	switch r.Winner {
	case Empty:
		return "draw"
	case r.AIMarker:
		return "loss"
	default:
		return "win"
	}
}
