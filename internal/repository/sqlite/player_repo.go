package sqlite

import (
	"database/sql"
	"fmt"
	"time"

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

func (r *PlayerRepo) CreatePlayer(username, passwordHash string) (*domain.Player, error) {
	now := time.Now().UTC()
	res, err := r.DB.Exec(`INSERT INTO players (username, password_hash, created_at) VALUES (?, ?, ?)`, username, passwordHash, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read player id: %w", err)
	}
	return &domain.Player{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// GetPlayerByUsername returns nil, nil when no player has that name
func (r *PlayerRepo) GetPlayerByUsername(username string) (*domain.Player, error) {
	p, err := scanPlayer(r.DB.QueryRow(`SELECT `+playerColumns+` FROM players WHERE username = ?`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by username: %w", err)
	}
	return p, nil
}

func (r *PlayerRepo) GetPlayerByID(id int64) (*domain.Player, error) {
	p, err := scanPlayer(r.DB.QueryRow(`SELECT `+playerColumns+` FROM players WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	return p, nil
}
