package domain

import (
	"errors"
	"testing"
)

func TestValidatePosition(t *testing.T) {
	ok := Position{
		"0-0": {Direction: [2]int{0, 0}, Content: X},
		"1-1": {Direction: [2]int{1, 1}, Content: O},
	}
	if err := ValidatePosition(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		pos  Position
		want error
	}{
		{"out of bounds", Position{"a": {Direction: [2]int{3, 0}, Content: X}}, ErrOutOfBounds},
		{"negative", Position{"a": {Direction: [2]int{0, -1}, Content: X}}, ErrOutOfBounds},
		{"bad marker", Position{"a": {Direction: [2]int{0, 0}, Content: "Z"}}, ErrInvalidMark},
		{"empty marker", Position{"a": {Direction: [2]int{0, 0}}}, ErrInvalidMark},
		{"duplicate cell", Position{
			"a": {Direction: [2]int{2, 2}, Content: X},
			"b": {Direction: [2]int{2, 2}, Content: O},
		}, ErrCellOccupied},
	}
	for _, tc := range cases {
		if err := ValidatePosition(tc.pos); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestPositionWithCopies(t *testing.T) {
	p := Position{"a": {Direction: [2]int{0, 0}, Content: X}}
	next := p.With(MoveRecord{Direction: [2]int{1, 1}, Content: O})
	if len(p) != 1 {
		t.Fatalf("expected original position untouched, got %d records", len(p))
	}
	if len(next) != 2 {
		t.Fatalf("expected 2 records, got %d", len(next))
	}
}

func TestMarkersFor(t *testing.T) {
	if cur, opp := MarkersFor(true); cur != X || opp != O {
		t.Fatalf("expected X/O, got %s/%s", cur, opp)
	}
	if cur, opp := MarkersFor(false); cur != O || opp != X {
		t.Fatalf("expected O/X, got %s/%s", cur, opp)
	}
}
