package battle

import (
	"testing"

	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/field"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	f := field.NewDefault()
	player := entity.NewCharacter(1, "Mega", field.TeamRed, 2, 2, 1000)
	if err := f.Place(player.ID, player.Team, player.X, player.Y); err != nil {
		t.Fatalf("place player: %v", err)
	}
	s := NewSession(f, player, cards.MustLoadRegistry(), cards.MustLoadAdvances())

	opponent := entity.NewCharacter(2, "Proto", field.TeamBlue, 5, 2, 1000)
	if err := f.Place(opponent.ID, opponent.Team, opponent.X, opponent.Y); err != nil {
		t.Fatalf("place opponent: %v", err)
	}
	s.Opponent = opponent
	return s
}

func freezeAction(t *testing.T, s *Session, cardID string) CardAction {
	t.Helper()
	def := s.Registry.GetByID(cardID)
	if def == nil {
		t.Fatalf("unknown card %q", cardID)
	}
	return NewAction(def, s)
}

func startedFreeze(t *testing.T, s *Session, actor *entity.Character, cardID string) *TimeFreezeState {
	t.Helper()
	st := NewTimeFreezeState(s)
	s.PendingFreeze = NewTimeFreezeEvent(actor, freezeAction(t, s, cardID))
	st.OnStart(nil)
	return st
}

func TestFreezeQueueNeverExceedsTwo(t *testing.T) {
	s := testSession(t)
	st := startedFreeze(t, s, s.Opponent, "ZetaCannon")
	st.OnUpdate(1)

	if !st.TryCounter(s.Player, freezeAction(t, s, "AntiDmg")) {
		t.Fatal("opposing-team counter rejected inside the window")
	}
	if st.QueueLen() != 2 {
		t.Fatalf("queue len = %d, want 2", st.QueueLen())
	}

	// A third event never queues, whichever team tries.
	if st.TryCounter(s.Opponent, freezeAction(t, s, "AntiDmg")) {
		t.Fatal("third event queued past the bound")
	}
	if st.TryCounter(s.Player, freezeAction(t, s, "AntiDmg")) {
		t.Fatal("third event queued past the bound")
	}
	if st.QueueLen() != 2 {
		t.Fatalf("queue len = %d, want 2", st.QueueLen())
	}
}

func TestFreezeSameTeamCannotCounter(t *testing.T) {
	s := testSession(t)
	st := startedFreeze(t, s, s.Opponent, "ZetaCannon")
	st.OnUpdate(1)

	teammate := entity.NewCharacter(3, "Bass", field.TeamBlue, 4, 1, 500)
	if st.TryCounter(teammate, freezeAction(t, s, "AntiDmg")) {
		t.Fatal("same-team duplicate queued")
	}
	if st.QueueLen() != 1 {
		t.Fatalf("queue len = %d, want 1", st.QueueLen())
	}
}

func TestFreezeCounterWindowCloses(t *testing.T) {
	s := testSession(t)
	st := startedFreeze(t, s, s.Opponent, "ZetaCannon")
	for i := 0; i < int(alertWindowFrames); i++ {
		st.OnUpdate(1)
	}
	if st.TryCounter(s.Player, freezeAction(t, s, "AntiDmg")) {
		t.Fatal("counter accepted after the banner window closed")
	}
}

func TestFreezeCounterRunsFirstAndFlagsPlayer(t *testing.T) {
	s := testSession(t)
	st := startedFreeze(t, s, s.Opponent, "ZetaCannon")
	st.OnUpdate(1)

	if !st.TryCounter(s.Player, freezeAction(t, s, "AntiDmg")) {
		t.Fatal("counter rejected")
	}
	if !st.PlayerCountered() {
		t.Fatal("player counter not flagged")
	}
	if s.CounterCount != 1 {
		t.Fatalf("counter count = %d, want 1", s.CounterCount)
	}

	// Run the banner out; the counter (front of queue) executes first,
	// so the opponent takes AntiDmg's hit before ZetaCannon resolves.
	for st.QueueLen() == 2 {
		st.OnUpdate(1)
		if s.Opponent.HP < 1000 && s.Player.HP == 1000 {
			return
		}
	}
	t.Fatal("counter did not resolve before the original action")
}

func TestFreezeRunsToCompletion(t *testing.T) {
	s := testSession(t)
	st := startedFreeze(t, s, s.Opponent, "ZetaCannon")

	for i := 0; i < 10*int(alertWindowFrames) && !st.IsOver(); i++ {
		st.OnUpdate(1)
	}
	if !st.IsOver() {
		t.Fatal("freeze never finished")
	}
	if s.Player.HP != 1000-300 {
		t.Fatalf("player hp = %d, want 700", s.Player.HP)
	}
	st.OnEnd(nil)
	if st.QueueLen() != 0 {
		t.Fatalf("queue not cleared on exit")
	}
}

func TestFreezeStuntDoubleFailureAborts(t *testing.T) {
	s := testSession(t)
	// AreaGrab skips the banner, so placement happens at state start.
	// Breaking the actor's tile makes the swap impossible.
	st := NewTimeFreezeState(s)
	s.Field.Remove(s.Opponent.ID)
	s.Field.At(s.Opponent.X, s.Opponent.Y).Broken = true
	s.PendingFreeze = NewTimeFreezeEvent(s.Opponent, freezeAction(t, s, "AreaGrab"))

	st.OnStart(nil)

	if !s.AbortRequested {
		t.Fatal("placement failure did not request abort")
	}
	if !st.IsOver() {
		t.Fatal("freeze should be over after abort")
	}
}
