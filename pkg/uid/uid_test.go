package uid

import "testing"

func TestGenerateGameID(t *testing.T) {
	a, b := GenerateGameID(), GenerateGameID()
	if len(a) != 32 || a == b {
		t.Fatalf("expected distinct 32 char IDs, got %q %q", a, b)
	}
}

func TestGenerateSessionID(t *testing.T) {
	id, err := GenerateSessionID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 64 {
		t.Fatalf("expected 64 chars, got %d", len(id))
	}
}

func TestGenerateGuestID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenerateGuestID()
		if id >= 0 || id < -(1<<52) {
			t.Fatalf("guest id %d out of range", id)
		}
	}
}
