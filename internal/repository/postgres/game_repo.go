package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame saves a finished game and updates the player's stats transactionally.
// Guests (non-positive IDs) only get the game row.
func (r *GameRepo) SaveGame(rec *domain.GameRecord) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	// a game is recorded once; saving it again leaves row and stats alone
	query := `
	INSERT INTO game (game_id, player_id, player_username, ai_marker, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO NOTHING;
	`

	res, err := tx.Exec(query, rec.GameID, rec.PlayerID, rec.PlayerUsername, string(rec.AIMarker), string(rec.Winner),
		rec.Reason, rec.TotalMoves, rec.DurationSeconds, rec.CreatedAt, rec.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}

	if inserted == 1 && rec.PlayerID > 0 {
		if err := r.updatePlayerStatsTx(tx, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *GameRepo) updatePlayerStatsTx(tx *sql.Tx, rec *domain.GameRecord) error {
	result := rec.Result()
	query := `
	UPDATE players
	SET games_played = games_played + 1,
	    games_won = games_won + CASE WHEN $2 THEN 1 ELSE 0 END,
	    games_drawn = games_drawn + CASE WHEN $3 THEN 1 ELSE 0 END
	WHERE id = $1;
	`
	if _, err := tx.Exec(query, rec.PlayerID, result == "win", result == "draw"); err != nil {
		return fmt.Errorf("failed to update player stats in transaction: %w", err)
	}
	return nil
}

const gameColumns = `game_id, player_id, player_username, ai_marker, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state`

func scanGame(row interface{ Scan(...any) error }) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var aiMarker, winner string
	var boardJSON []byte

	err := row.Scan(&rec.GameID, &rec.PlayerID, &rec.PlayerUsername, &aiMarker, &winner, &rec.Reason,
		&rec.TotalMoves, &rec.DurationSeconds, &rec.CreatedAt, &rec.FinishedAt, &boardJSON)
	if err != nil {
		return nil, err
	}
	rec.AIMarker = domain.Marker(aiMarker)
	rec.Winner = domain.Marker(winner)

	if len(boardJSON) > 0 {
		if err := json.Unmarshal(boardJSON, &rec.Board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	return &rec, nil
}

// GetGameByID returns nil, nil if the game does not exist
func (r *GameRepo) GetGameByID(gameID string) (*domain.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM game WHERE game_id = $1;`

	rec, err := scanGame(r.DB.QueryRow(query, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

// GetPlayerHistory returns the player's finished games, newest first
func (r *GameRepo) GetPlayerHistory(playerID int64, limit int) ([]domain.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM game WHERE player_id = $1 ORDER BY finished_at DESC LIMIT $2;`

	rows, err := r.DB.Query(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}
