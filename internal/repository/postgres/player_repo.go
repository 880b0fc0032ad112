package postgres

import (
	"database/sql"
	"fmt"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

type PlayerRepo struct {
	DB *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{DB: db}
}

const playerColumns = `id, username, password_hash, games_played, games_won, games_drawn, created_at`

func scanPlayer(row interface{ Scan(...any) error }) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.GamesPlayed, &p.GamesWon, &p.GamesDrawn, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlayer inserts a player and returns it with its generated ID
func (r *PlayerRepo) CreatePlayer(username, passwordHash string) (*domain.Player, error) {
	query := `
	INSERT INTO players (username, password_hash)
	VALUES ($1, $2)
	RETURNING ` + playerColumns + `;
	`
	p, err := scanPlayer(r.DB.QueryRow(query, username, passwordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return p, nil
}

// GetPlayerByUsername returns nil, nil when no player has that name
func (r *PlayerRepo) GetPlayerByUsername(username string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE LOWER(username) = LOWER($1);`
	p, err := scanPlayer(r.DB.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by username: %w", err)
	}
	return p, nil
}

func (r *PlayerRepo) GetPlayerByID(id int64) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1;`
	p, err := scanPlayer(r.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	return p, nil
}
