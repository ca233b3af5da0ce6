package cards

import "testing"

func TestLoadRegistry(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() == 0 {
		t.Fatal("registry is empty")
	}

	cannon := registry.GetByID("Cannon_A")
	if cannon == nil {
		t.Fatal("Cannon_A not found by ID")
	}
	if cannon.Shortname != "Cannon" {
		t.Errorf("Expected shortname 'Cannon', got %q", cannon.Shortname)
	}
	if cannon.TimeFreeze {
		t.Error("Cannon_A should not be a time-freeze card")
	}

	bomb := registry.GetByID("TimeBomb")
	if bomb == nil {
		t.Fatal("TimeBomb not found by ID")
	}
	if !bomb.TimeFreeze {
		t.Error("TimeBomb should be a time-freeze card")
	}
	if bomb.LockoutType() != LockoutSequence {
		t.Error("TimeBomb should use sequence lockout")
	}

	if registry.GetByID("NoSuchCard") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestHandCursorMonotonic(t *testing.T) {
	h := NewHand([]string{"Cannon_A", "Sword_S", "Barrier"})

	if h.Remaining() != 3 {
		t.Fatalf("Remaining = %d, want 3", h.Remaining())
	}

	id, ok := h.Peek()
	if !ok || id != "Cannon_A" {
		t.Fatalf("Peek = %q,%v; want Cannon_A", id, ok)
	}

	// Peek does not consume
	if h.Remaining() != 3 {
		t.Error("Peek should not consume")
	}

	prevCursor := h.Cursor()
	for i := 0; i < 3; i++ {
		_, ok := h.DropNext()
		if !ok {
			t.Fatalf("DropNext %d failed", i)
		}
		if h.Cursor() < prevCursor {
			t.Errorf("cursor moved backwards: %d -> %d", prevCursor, h.Cursor())
		}
		prevCursor = h.Cursor()
	}

	if _, ok := h.DropNext(); ok {
		t.Error("exhausted hand should not yield more cards")
	}
	if h.Len() != 3 {
		t.Error("used cards must stay in the hand for stable indices")
	}
}

func TestFindAdvance(t *testing.T) {
	advances := MustLoadAdvances()

	cases := []struct {
		name string
		ids  []string
		want string // advance id, "" for none
	}{
		{name: "exact zeta cannon", ids: []string{"Cannon_A", "Cannon_B", "Cannon_C"}, want: "zeta_cannon"},
		{name: "embedded in longer hand", ids: []string{"Barrier", "Sword_S", "WideSword_W", "LongSword_L", "Recover30"}, want: "life_sword"},
		{name: "wrong order", ids: []string{"Cannon_C", "Cannon_B", "Cannon_A"}, want: ""},
		{name: "non-contiguous", ids: []string{"Cannon_A", "Barrier", "Cannon_B", "Cannon_C"}, want: ""},
		{name: "single card no combo", ids: []string{"FireSword_A"}, want: ""},
		{name: "empty hand", ids: nil, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FindAdvance(advances, tc.ids)
			if tc.want == "" {
				if got != nil {
					t.Errorf("FindAdvance(%v) = %s, want none", tc.ids, got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindAdvance(%v) = none, want %s", tc.ids, tc.want)
			}
			if got.ID != tc.want {
				t.Errorf("FindAdvance(%v) = %s, want %s", tc.ids, got.ID, tc.want)
			}
		})
	}
}

func TestAdvanceResultsExistInRegistry(t *testing.T) {
	registry := MustLoadRegistry()
	for _, adv := range MustLoadAdvances() {
		if registry.GetByID(adv.Result) == nil {
			t.Errorf("advance %s result card %q not in cards.json", adv.ID, adv.Result)
		}
		for _, id := range adv.Sequence {
			if registry.GetByID(id) == nil {
				t.Errorf("advance %s sequence card %q not in cards.json", adv.ID, id)
			}
		}
	}
}
