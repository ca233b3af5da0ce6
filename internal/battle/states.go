package battle

import (
	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/frametime"
	"github.com/samdwyer/netbattle/internal/stategraph"
)

// baseState supplies no-op lifecycle hooks so concrete states only declare
// the ones they use.
type baseState struct{}

func (baseState) OnStart(prev stategraph.State)        {}
func (baseState) OnUpdate(elapsed frametime.FrameTime) {}
func (baseState) OnEnd(next stategraph.State)          {}
func (baseState) OnDraw(surface stategraph.Surface)    {}

// IntroState plays the mob spawn-in animation in solo play. The networked
// graph starts at the connect sync gate instead.
type IntroState struct {
	baseState
	session *Session
	elapsed frametime.FrameTime
}

// NewIntroState creates the solo intro state.
func NewIntroState(session *Session) *IntroState {
	return &IntroState{session: session}
}

// OnUpdate advances the spawn-in timer.
func (st *IntroState) OnUpdate(elapsed frametime.FrameTime) {
	st.elapsed += elapsed
}

// IntroComplete is the edge condition into card select.
func (st *IntroState) IntroComplete() bool {
	if st.session.Mob == nil {
		return true
	}
	return st.elapsed >= frametime.FrameTime(st.session.Mob.IntroFrames)
}

// CardSelectState runs the card widget phase. The widget itself is UI; the
// state consumes its output from the session once the player confirms, and
// snapshots what was chosen so the outgoing edges can route on it.
type CardSelectState struct {
	baseState
	session *Session

	// OnOpen and OnConfirm are network hooks: announcing the widget opening
	// and sending the handshake with the confirmed hand. Nil in solo play.
	OnOpen    func()
	OnConfirm func(cardIDs []string, form int)

	confirmed  bool
	newCards   bool
	formChosen bool
	retreat    bool
}

// NewCardSelectState creates the card selection state.
func NewCardSelectState(session *Session) *CardSelectState {
	return &CardSelectState{session: session}
}

// OnStart resets the widget output and announces the opening to the peer.
func (st *CardSelectState) OnStart(prev stategraph.State) {
	st.confirmed = false
	st.newCards = false
	st.formChosen = false
	st.retreat = false

	st.session.Confirmed = false
	st.session.RetreatChoice = false
	st.session.PendingSelection = nil
	st.session.Gauge = 0

	if st.OnOpen != nil {
		st.OnOpen()
	}
}

// OnUpdate waits for the widget to confirm, then commits the selection.
func (st *CardSelectState) OnUpdate(elapsed frametime.FrameTime) {
	if st.confirmed || !st.session.Confirmed {
		return
	}
	st.confirmed = true
	st.newCards = len(st.session.PendingSelection) > 0
	st.retreat = st.session.RetreatChoice && st.session.Mob != nil

	fd := st.session.FormFor(st.session.Player)
	if st.session.PendingForm != fd.SelectedForm {
		st.formChosen = true
		fd.SelectedForm = st.session.PendingForm
		fd.AnimationComplete = false
	}

	if st.newCards {
		st.session.Hand = cards.NewHand(st.session.PendingSelection)
	}
	st.session.TurnCount++

	if st.OnConfirm != nil {
		st.OnConfirm(st.session.PendingSelection, st.session.PendingForm)
	}
}

// NewCardsChosen routes into the combo check.
func (st *CardSelectState) NewCardsChosen() bool { return st.confirmed && st.newCards }

// FormChosenOnly routes straight to the form change when the player picked a
// form but no new cards.
func (st *CardSelectState) FormChosenOnly() bool {
	return st.confirmed && !st.newCards && st.formChosen
}

// ConfirmedEmpty routes straight to battle start.
func (st *CardSelectState) ConfirmedEmpty() bool {
	return st.confirmed && !st.newCards && !st.formChosen
}

// RetreatRequested routes to the retreat attempt. Solo PvE only.
func (st *CardSelectState) RetreatRequested() bool { return st.confirmed && st.retreat }

// FormChosen reports whether this confirmation included a form pick,
// regardless of cards. Used after the combo check.
func (st *CardSelectState) FormChosen() bool { return st.confirmed && st.formChosen }

// ComboCheckState resolves the confirmed hand's program advance. It steps a
// private simulation in fixed one-frame increments so its duration matches
// what the opponent's dry-run computes from the same card list, then fuses
// the advance into the real hand exactly once when the reveal finishes.
type ComboCheckState struct {
	baseState
	session *Session

	run   *ComboRun
	fused bool
}

// NewComboCheckState creates the program-advance resolution state.
func NewComboCheckState(session *Session) *ComboCheckState {
	return &ComboCheckState{session: session}
}

// OnStart begins a fresh run against the confirmed hand.
func (st *ComboCheckState) OnStart(prev stategraph.State) {
	ids := []string{}
	if st.session.Hand != nil {
		ids = st.session.Hand.IDs()
	}
	st.run = NewComboRun(st.session.Advances, ids)
	st.fused = false
}

// OnUpdate steps the reveal one frame per tick and applies the fusion when
// it completes.
func (st *ComboCheckState) OnUpdate(elapsed frametime.FrameTime) {
	if st.run == nil || st.fused {
		return
	}
	if !st.run.IsDone() {
		st.run.StepFrame()
		return
	}
	if st.run.Advance() != nil {
		st.session.Hand = cards.NewHand(st.run.FusedIDs())
	}
	st.fused = true
}

// IsDone is the edge condition out of the combo check.
func (st *ComboCheckState) IsDone() bool { return st.fused }

const formChangeFrames = frametime.FrameTime(45)

// FormChangeState plays the transform animation for whichever character has
// a pending form, then applies the new form index. Mid-combat decrosses loop
// combat through here and back.
type FormChangeState struct {
	baseState
	session *Session

	// OnApplied is a network hook fired when the local player's new form
	// commits, so the peer learns about a mid-round decross. Nil in solo
	// play.
	OnApplied func(form int)

	elapsed frametime.FrameTime
	applied bool
}

// NewFormChangeState creates the form-change state.
func NewFormChangeState(session *Session) *FormChangeState {
	return &FormChangeState{session: session}
}

// OnStart begins the transform animation.
func (st *FormChangeState) OnStart(prev stategraph.State) {
	st.elapsed = 0
	st.applied = false
}

// OnUpdate counts the animation out, then commits the form and marks the
// animation complete.
func (st *FormChangeState) OnUpdate(elapsed frametime.FrameTime) {
	st.elapsed += elapsed
	if st.applied || st.elapsed < formChangeFrames {
		return
	}
	for id, fd := range st.session.Forms {
		if fd.AnimationComplete {
			continue
		}
		fd.AnimationComplete = true
		if c := st.session.characterByID(id); c != nil {
			c.Form = fd.SelectedForm
			if c == st.session.Player && st.OnApplied != nil {
				st.OnApplied(fd.SelectedForm)
			}
		}
	}
	st.applied = true
}

// AnimationFinished is the edge condition into battle start (or back to
// combat on a decross).
func (st *FormChangeState) AnimationFinished() bool { return st.applied }

const soloStartupDelay = frametime.FrameTime(60)

// BattleStartState holds the "Battle Start" banner. Solo play holds a fixed
// second; networked play holds the round start delay derived from the
// handshake so both clients enter combat on the same simulated frame.
type BattleStartState struct {
	baseState
	startupDelay frametime.FrameTime
	elapsed      frametime.FrameTime
}

// NewBattleStartState creates the banner state with the solo default delay.
func NewBattleStartState() *BattleStartState {
	return &BattleStartState{startupDelay: soloStartupDelay}
}

// SetStartupDelay overrides the banner hold. The network layer calls this
// with the derived round start delay before combat begins.
func (st *BattleStartState) SetStartupDelay(d frametime.FrameTime) {
	st.startupDelay = d
}

// StartupDelay returns the current banner hold.
func (st *BattleStartState) StartupDelay() frametime.FrameTime { return st.startupDelay }

// OnStart restarts the banner timer.
func (st *BattleStartState) OnStart(prev stategraph.State) { st.elapsed = 0 }

// OnUpdate advances the banner timer.
func (st *BattleStartState) OnUpdate(elapsed frametime.FrameTime) { st.elapsed += elapsed }

// BannerDone is the edge condition into combat.
func (st *BattleStartState) BannerDone() bool { return st.elapsed >= st.startupDelay }

// characterByID resolves a tracked form entry back to its character.
func (s *Session) characterByID(id int) *entity.Character {
	if s.Player != nil && s.Player.ID == id {
		return s.Player
	}
	if s.Opponent != nil && s.Opponent.ID == id {
		return s.Opponent
	}
	if s.Mob != nil {
		for _, e := range s.Mob.Enemies {
			if e.ID == id {
				return e
			}
		}
	}
	return nil
}
