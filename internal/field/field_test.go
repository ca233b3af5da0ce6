package field

import (
	"errors"
	"testing"
)

func TestMirrorXRoundTrip(t *testing.T) {
	// mirror(mirror(x)) == x for any field width
	for width := 1; width <= 12; width++ {
		f := New(width, DefaultHeight)
		for x := 1; x <= width; x++ {
			if got := f.MirrorX(f.MirrorX(x)); got != x {
				t.Errorf("width %d: MirrorX(MirrorX(%d)) = %d, want %d", width, x, got, x)
			}
		}
	}
}

func TestMirrorXReflects(t *testing.T) {
	f := NewDefault()
	cases := []struct{ x, want int }{
		{1, 6}, {2, 5}, {3, 4}, {4, 3}, {5, 2}, {6, 1},
	}
	for _, tc := range cases {
		if got := f.MirrorX(tc.x); got != tc.want {
			t.Errorf("MirrorX(%d) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestTeamSplit(t *testing.T) {
	f := NewDefault()
	if f.At(1, 1).Team != TeamRed {
		t.Error("leftmost column should be red")
	}
	if f.At(3, 2).Team != TeamRed {
		t.Error("column 3 should be red")
	}
	if f.At(4, 2).Team != TeamBlue {
		t.Error("column 4 should be blue")
	}
	if f.At(6, 3).Team != TeamBlue {
		t.Error("rightmost column should be blue")
	}
}

func TestPlacementRules(t *testing.T) {
	f := NewDefault()

	if err := f.Place(1, TeamRed, 2, 2); err != nil {
		t.Fatalf("valid placement failed: %v", err)
	}

	// Occupied by someone else
	err := f.Place(2, TeamRed, 2, 2)
	if !errors.Is(err, ErrTileOccupied) {
		t.Errorf("expected ErrTileOccupied, got %v", err)
	}

	// Re-placing the same entity on its own tile is fine
	if err := f.Place(1, TeamRed, 2, 2); err != nil {
		t.Errorf("re-placing same entity failed: %v", err)
	}

	// Wrong team
	err = f.Place(3, TeamRed, 5, 1)
	if !errors.Is(err, ErrWrongTeam) {
		t.Errorf("expected ErrWrongTeam, got %v", err)
	}

	// Out of bounds
	err = f.Place(3, TeamRed, 0, 1)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	// Broken tile
	f.At(3, 3).Broken = true
	err = f.Place(3, TeamRed, 3, 3)
	if !errors.Is(err, ErrTileBroken) {
		t.Errorf("expected ErrTileBroken, got %v", err)
	}
}

func TestMoveVacatesOrigin(t *testing.T) {
	f := NewDefault()
	if err := f.Place(7, TeamBlue, 5, 1); err != nil {
		t.Fatal(err)
	}
	if err := f.Move(7, TeamBlue, 5, 1, 6, 1); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if f.At(5, 1).Occupied() {
		t.Error("origin tile still occupied after move")
	}
	if f.At(6, 1).Occupant() != 7 {
		t.Error("destination tile not occupied after move")
	}

	// Failed move leaves the origin alone
	if err := f.Place(8, TeamBlue, 5, 2); err != nil {
		t.Fatal(err)
	}
	if err := f.Move(7, TeamBlue, 6, 1, 5, 2); err == nil {
		t.Fatal("expected move onto occupied tile to fail")
	}
	if f.At(6, 1).Occupant() != 7 {
		t.Error("failed move should not vacate origin")
	}
}

func TestToggleTimeFreeze(t *testing.T) {
	f := NewDefault()
	f.ToggleTimeFreeze(true)
	if !f.At(1, 1).Frozen || !f.At(6, 3).Frozen {
		t.Error("all tiles should be frozen")
	}
	f.ToggleTimeFreeze(false)
	if f.At(3, 2).Frozen {
		t.Error("tiles should thaw")
	}
}
