package battle

import (
	"testing"

	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/frametime"
)

func testAdvances(t *testing.T) []cards.AdvanceDef {
	t.Helper()
	return cards.MustLoadAdvances()
}

func TestComboRunFindsAdvance(t *testing.T) {
	advances := testAdvances(t)
	run := NewComboRun(advances, []string{"Cannon_A", "Cannon_B", "Cannon_C"})
	if run.Advance() == nil {
		t.Fatal("zeta cannon sequence not matched")
	}
	if run.Advance().Result != "ZetaCannon" {
		t.Fatalf("result = %q, want ZetaCannon", run.Advance().Result)
	}
	if run.Duration() != frametime.FrameTime(run.Advance().RevealFrames) {
		t.Fatalf("duration = %v, want %v", run.Duration(), run.Advance().RevealFrames)
	}
}

func TestComboRunCompletesWithinBound(t *testing.T) {
	advances := testAdvances(t)
	run := NewComboRun(advances, []string{"Sword_S", "WideSword_W", "LongSword_L"})
	steps := 0
	for !run.IsDone() {
		run.StepFrame()
		steps++
		if frametime.FrameTime(steps) > comboStepBound {
			t.Fatalf("run not done after %d steps", steps)
		}
	}
	if steps != int(run.Duration()) {
		t.Fatalf("done after %d steps, want %v", steps, run.Duration())
	}
}

func TestComboRunDoesNotMutateCallerSlice(t *testing.T) {
	advances := testAdvances(t)
	ids := []string{"Cannon_A", "Cannon_B", "Cannon_C", "Recover30"}
	snapshot := append([]string(nil), ids...)

	run := NewComboRun(advances, ids)
	for !run.IsDone() {
		run.StepFrame()
	}
	run.FusedIDs()

	for i := range snapshot {
		if ids[i] != snapshot[i] {
			t.Fatalf("caller slice mutated at %d: %q", i, ids[i])
		}
	}
}

func TestComboSimulationIsSymmetric(t *testing.T) {
	advances := testAdvances(t)
	hands := [][]string{
		{"FireSword_A"},
		{"Cannon_A", "Cannon_B", "Cannon_C"},
		{"Recover30", "Sword_S", "WideSword_W", "LongSword_L"},
		{},
	}
	for _, hand := range hands {
		// The sender measuring its own hand and the receiver dry-running
		// the transmitted list must land on the same frame count.
		local := SimulateComboDuration(advances, hand)
		remote := SimulateComboDuration(advances, append([]string(nil), hand...))
		if local != remote {
			t.Errorf("hand %v: local %v != remote %v", hand, local, remote)
		}
	}
}

func TestComboNoAdvanceIsInstant(t *testing.T) {
	advances := testAdvances(t)
	if d := SimulateComboDuration(advances, []string{"FireSword_A"}); d != 0 {
		t.Fatalf("single card duration = %v, want 0", d)
	}
	run := NewComboRun(advances, []string{"FireSword_A"})
	if !run.IsDone() {
		t.Fatal("no-advance run should be done immediately")
	}
}

func TestFusedIDsReplacesSequence(t *testing.T) {
	advances := testAdvances(t)
	run := NewComboRun(advances, []string{"Recover30", "Cannon_A", "Cannon_B", "Cannon_C", "Barrier"})
	fused := run.FusedIDs()
	want := []string{"Recover30", "ZetaCannon", "Barrier"}
	if len(fused) != len(want) {
		t.Fatalf("fused = %v, want %v", fused, want)
	}
	for i := range want {
		if fused[i] != want[i] {
			t.Fatalf("fused = %v, want %v", fused, want)
		}
	}
}
