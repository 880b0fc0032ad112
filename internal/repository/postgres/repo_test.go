package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/uid"
)

// These run against a real database only when TEST_DATABASE_URL is set.
func openTestDB(t *testing.T) (*PlayerRepo, *GameRepo) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(url, 5, 5, 1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewPlayerRepo(db), NewGameRepo(db)
}

func TestPlayerAndGameRoundTrip(t *testing.T) {
	players, games := openTestDB(t)

	name := "pg_" + uid.GenerateGameID()[:12]
	p, err := players.CreatePlayer(name, "hash")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	rec := &domain.GameRecord{
		GameID:         uid.GenerateGameID(),
		PlayerID:       p.ID,
		PlayerUsername: p.Username,
		AIMarker:       domain.O,
		Winner:         domain.Empty,
		Reason:         "draw",
		TotalMoves:     9,
		CreatedAt:      now.Add(-time.Minute),
		FinishedAt:     now,
	}
	rec.Board[1][1] = domain.X
	if err := games.SaveGame(rec); err != nil {
		t.Fatalf("save game: %v", err)
	}

	got, err := games.GetGameByID(rec.GameID)
	if err != nil || got == nil {
		t.Fatalf("get game: %v %v", got, err)
	}
	if got.Board != rec.Board || got.AIMarker != domain.O || got.Winner != domain.Empty {
		t.Fatalf("unexpected record %+v", got)
	}

	if err := games.SaveGame(rec); err != nil {
		t.Fatalf("resave game: %v", err)
	}

	updated, err := players.GetPlayerByID(p.ID)
	if err != nil || updated == nil {
		t.Fatalf("get player: %v", err)
	}
	if updated.GamesPlayed != 1 || updated.GamesDrawn != 1 {
		t.Fatalf("unexpected stats after a repeated save %+v", updated)
	}

	history, err := games.GetPlayerHistory(p.ID, 10)
	if err != nil || len(history) != 1 {
		t.Fatalf("history: %v %v", history, err)
	}
}
