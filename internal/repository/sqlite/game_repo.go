package sqlite

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
	res, err := tx.Exec(`
	INSERT INTO game (game_id, player_id, player_username, ai_marker, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (game_id) DO NOTHING`,
		rec.GameID, rec.PlayerID, rec.PlayerUsername, string(rec.AIMarker), string(rec.Winner),
		rec.Reason, rec.TotalMoves, rec.DurationSeconds, rec.CreatedAt.UTC(), rec.FinishedAt.UTC(), string(boardJSON))
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}

	if inserted == 1 && rec.PlayerID > 0 {
		result := rec.Result()
		won, drawn := 0, 0
		if result == "win" {
			won = 1
		} else if result == "draw" {
			drawn = 1
		}
		_, err := tx.Exec(`UPDATE players SET games_played = games_played + 1, games_won = games_won + ?, games_drawn = games_drawn + ? WHERE id = ?`,
			won, drawn, rec.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to update player stats in transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const gameColumns = `game_id, player_id, player_username, ai_marker, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state`

func scanGame(row interface{ Scan(...any) error }) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var aiMarker, winner string
	var boardJSON sql.NullString

	err := row.Scan(&rec.GameID, &rec.PlayerID, &rec.PlayerUsername, &aiMarker, &winner, &rec.Reason,
		&rec.TotalMoves, &rec.DurationSeconds, &rec.CreatedAt, &rec.FinishedAt, &boardJSON)
	if err != nil {
		return nil, err
	}
	rec.AIMarker = domain.Marker(aiMarker)
	rec.Winner = domain.Marker(winner)

	if boardJSON.Valid && boardJSON.String != "" {
		if err := json.Unmarshal([]byte(boardJSON.String), &rec.Board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	return &rec, nil
}

func (r *GameRepo) GetGameByID(gameID string) (*domain.GameRecord, error) {
	rec, err := scanGame(r.DB.QueryRow(`SELECT `+gameColumns+` FROM game WHERE game_id = ?`, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

func (r *GameRepo) GetPlayerHistory(playerID int64, limit int) ([]domain.GameRecord, error) {
	rows, err := r.DB.Query(`SELECT `+gameColumns+` FROM game WHERE player_id = ? ORDER BY finished_at DESC LIMIT ?`, playerID, limit)
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
