package battle

import (
	"github.com/samdwyer/netbattle/internal/frametime"
	"github.com/samdwyer/netbattle/internal/stategraph"
)

// CombatState is the real-time phase: the card gauge refills, played cards
// resolve, and the win/loss/interrupt conditions its outgoing edges read are
// kept current. Its predicates are pure queries; all mutation happens here
// in OnUpdate.
type CombatState struct {
	baseState
	session *Session

	// OnCardUsed is a network hook fired when the local player commits a
	// card, before it resolves. Nil in solo play.
	OnCardUsed func(id string)

	// OnDefeat is a network hook fired once when the local player falls,
	// so the concession reaches the peer before teardown. Nil in solo play.
	OnDefeat func()

	active CardAction
}

// NewCombatState creates the combat state.
func NewCombatState(session *Session) *CombatState {
	return &CombatState{session: session}
}

// OnStart clears any stale input edge from the previous visit.
func (st *CombatState) OnStart(prev stategraph.State) {
	st.session.UseCardRequested = false
}

// OnUpdate advances the gauge, drives the active card action and plays the
// next card when the player asks for it.
func (st *CombatState) OnUpdate(elapsed frametime.FrameTime) {
	s := st.session

	if !s.GaugeFull() {
		s.Gauge += elapsed
	}

	if st.active != nil {
		st.active.Tick(elapsed)
		if st.active.IsLockoutOver() {
			st.active = nil
		}
	}

	if s.UseCardRequested {
		s.UseCardRequested = false
		st.playNextCard()
	}

	st.checkOutcome()
}

// playNextCard pulls the next unused card from the hand and either starts it
// inline or stages it as a time-freeze event.
func (st *CombatState) playNextCard() {
	s := st.session
	if st.active != nil || s.PendingFreeze != nil || s.Hand == nil {
		return
	}
	id, ok := s.Hand.DropNext()
	if !ok {
		return
	}
	def := s.Registry.GetByID(id)
	if def == nil {
		return
	}
	if st.OnCardUsed != nil {
		st.OnCardUsed(id)
	}

	action := NewAction(def, s)
	if def.TimeFreeze {
		s.PendingFreeze = NewTimeFreezeEvent(s.Player, action)
		return
	}
	st.active = action
	action.Execute(s.Player)
}

// checkOutcome refreshes the win/loss flags the outgoing edges read.
func (st *CombatState) checkOutcome() {
	s := st.session
	if s.PlayerWon || s.PlayerLost {
		return
	}
	if !s.Player.IsAlive() {
		s.PlayerLost = true
		if st.OnDefeat != nil {
			st.OnDefeat()
		}
		return
	}
	switch {
	case s.Opponent != nil && !s.Opponent.IsAlive():
		s.PlayerWon = true
	case s.Mob != nil && s.Mob.Cleared():
		s.PlayerWon = true
	}
	if s.PlayerWon {
		s.Results.Won = true
		s.Results.Turns = s.TurnCount
		s.Results.Counters = s.CounterCount
	}
}

// TimeFreezePending routes into the time-freeze sub-state.
func (st *CombatState) TimeFreezePending() bool { return st.session.PendingFreeze != nil }

// PlayerWon routes to the battle-over banner.
func (st *CombatState) PlayerWon() bool { return st.session.PlayerWon }

// PlayerLost routes to the fade-out.
func (st *CombatState) PlayerLost() bool { return st.session.PlayerLost }

// GaugeFull loops back into card selection.
func (st *CombatState) GaugeFull() bool { return st.session.GaugeFull() }

// FormShouldChange routes through the form-change animation mid-round.
func (st *CombatState) FormShouldChange() bool { return st.session.FormShouldChange() }

const battleOverFrames = frametime.FrameTime(120)

// BattleOverState holds the "Enemy Deleted" message before the results.
type BattleOverState struct {
	baseState
	elapsed frametime.FrameTime
}

// NewBattleOverState creates the battle-over banner state.
func NewBattleOverState() *BattleOverState { return &BattleOverState{} }

// OnStart restarts the banner timer.
func (st *BattleOverState) OnStart(prev stategraph.State) { st.elapsed = 0 }

// OnUpdate advances the banner timer.
func (st *BattleOverState) OnUpdate(elapsed frametime.FrameTime) { st.elapsed += elapsed }

// MessageDone is the edge condition into rewards or fade-out.
func (st *BattleOverState) MessageDone() bool { return st.elapsed >= battleOverFrames }

const rewardsFrames = frametime.FrameTime(180)

// RewardsState computes and displays the results screen.
type RewardsState struct {
	baseState
	session *Session
	elapsed frametime.FrameTime
}

// NewRewardsState creates the rewards state.
func NewRewardsState(session *Session) *RewardsState {
	return &RewardsState{session: session}
}

// OnStart pays out the reward: base zenny scaled by the battle rank.
func (st *RewardsState) OnStart(prev stategraph.State) {
	st.elapsed = 0
	s := st.session
	if s.Mob != nil {
		s.Results.Zenny = s.Mob.RewardZenny * s.Results.Rank()
	}
}

// OnUpdate advances the display timer.
func (st *RewardsState) OnUpdate(elapsed frametime.FrameTime) { st.elapsed += elapsed }

// Dismissed is the edge condition into fade-out.
func (st *RewardsState) Dismissed() bool { return st.elapsed >= rewardsFrames }

const retreatFrames = frametime.FrameTime(30)

// RetreatState attempts a solo escape. Boss-class mobs refuse it and bounce
// the player back into combat.
type RetreatState struct {
	baseState
	session *Session
	elapsed frametime.FrameTime
}

// NewRetreatState creates the retreat state.
func NewRetreatState(session *Session) *RetreatState {
	return &RetreatState{session: session}
}

// OnStart restarts the escape animation.
func (st *RetreatState) OnStart(prev stategraph.State) { st.elapsed = 0 }

// OnUpdate advances the escape animation.
func (st *RetreatState) OnUpdate(elapsed frametime.FrameTime) { st.elapsed += elapsed }

// Escaped routes to fade-out when the mob allows retreating.
func (st *RetreatState) Escaped() bool {
	return st.elapsed >= retreatFrames && st.session.Mob != nil && st.session.Mob.CanRetreat
}

// Refused bounces back into combat.
func (st *RetreatState) Refused() bool {
	return st.elapsed >= retreatFrames && (st.session.Mob == nil || !st.session.Mob.CanRetreat)
}

const fadeOutFrames = frametime.FrameTime(60)

// FadeOutState is the terminal visual: once the fade completes it marks the
// session done and the game loop quits the graph.
type FadeOutState struct {
	baseState
	session *Session
	elapsed frametime.FrameTime
}

// NewFadeOutState creates the fade-out state.
func NewFadeOutState(session *Session) *FadeOutState {
	return &FadeOutState{session: session}
}

// OnStart restarts the fade timer.
func (st *FadeOutState) OnStart(prev stategraph.State) { st.elapsed = 0 }

// OnUpdate advances the fade and flags completion.
func (st *FadeOutState) OnUpdate(elapsed frametime.FrameTime) {
	st.elapsed += elapsed
	if st.elapsed >= fadeOutFrames {
		st.session.Completed = true
	}
}

// Done reports whether the fade has finished.
func (st *FadeOutState) Done() bool { return st.session.Completed }
