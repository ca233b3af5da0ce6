package battle

import (
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/field"
	"github.com/samdwyer/netbattle/internal/frametime"
	"github.com/samdwyer/netbattle/internal/stategraph"
)

const (
	// alertWindowFrames is how long the card name banner stays up. Only
	// within this window may the opposing team counter.
	alertWindowFrames = frametime.FrameTime(60)

	// actionCapFrames is the hard per-action limit. A sequence that never
	// releases its lockout is cut off here instead of hanging the battle.
	actionCapFrames = frametime.FrameTime(30 * frametime.FramesPerSecond)

	// freezeFadeFrames gates the return to combat after the last action.
	freezeFadeFrames = frametime.FrameTime(20)
)

// TimeFreezeEvent is one queued time-freeze action.
type TimeFreezeEvent struct {
	Actor       *entity.Character
	Action      CardAction
	StuntDouble *entity.Character
	Team        field.Team
	AlertFrames frametime.FrameTime // time spent under the banner
}

// NewTimeFreezeEvent wraps a played time-freeze card for queueing.
func NewTimeFreezeEvent(actor *entity.Character, action CardAction) *TimeFreezeEvent {
	return &TimeFreezeEvent{Actor: actor, Action: action, Team: actor.Team}
}

type freezePhase int

const (
	phaseAlert freezePhase = iota
	phaseExecute
	phaseFade
)

// TimeFreezeState pauses the field while queued card actions resolve. At
// most two events coexist: the action being announced and one counter from
// the opposing team. The counter is prepended, so execution runs the
// counter first, then the original action.
type TimeFreezeState struct {
	session *Session

	queue           []*TimeFreezeEvent
	phase           freezePhase
	playerCountered bool
	actionFrames    frametime.FrameTime
	fadeFrames      frametime.FrameTime
	placedDouble    *entity.Character
	hiddenActor     *entity.Character
	done            bool
}

// NewTimeFreezeState creates the time-freeze sub-state.
func NewTimeFreezeState(session *Session) *TimeFreezeState {
	return &TimeFreezeState{session: session}
}

// CanCounter reports whether a character may queue a counter right now:
// the banner window is open, the queue has room, and the character fights
// for the opposing team. Same-team duplicates never queue.
func (st *TimeFreezeState) CanCounter(team field.Team) bool {
	if len(st.queue) == 0 || len(st.queue) >= 2 {
		return false
	}
	front := st.queue[0]
	if st.phase != phaseAlert || front.AlertFrames >= alertWindowFrames {
		return false
	}
	if !front.Action.Def().Counterable {
		return false
	}
	return team == front.Team.Opposing()
}

// TryCounter queues a counter in front of the pending action. Returns false
// without queueing when countering is not allowed.
func (st *TimeFreezeState) TryCounter(actor *entity.Character, action CardAction) bool {
	if !st.CanCounter(actor.Team) {
		return false
	}
	ev := NewTimeFreezeEvent(actor, action)
	// The counter inherits the open window; prepending must not restart
	// the banner countdown.
	ev.AlertFrames = st.queue[0].AlertFrames
	st.queue = append([]*TimeFreezeEvent{ev}, st.queue...)
	if actor == st.session.Player {
		st.playerCountered = true
		st.session.CounterCount++
	}
	return true
}

// QueueLen reports how many events are pending.
func (st *TimeFreezeState) QueueLen() int { return len(st.queue) }

// PlayerCountered reports whether the local player landed a counter during
// this freeze. Drives the alert flash on the banner.
func (st *TimeFreezeState) PlayerCountered() bool { return st.playerCountered }

// IsOver is the edge condition back to combat.
func (st *TimeFreezeState) IsOver() bool { return st.done }

// OnStart freezes the field and consumes the pending event from combat.
func (st *TimeFreezeState) OnStart(prev stategraph.State) {
	st.queue = st.queue[:0]
	st.playerCountered = false
	st.done = false
	st.fadeFrames = 0

	ev := st.session.PendingFreeze
	st.session.PendingFreeze = nil
	if ev == nil {
		st.done = true
		return
	}
	st.queue = append(st.queue, ev)

	st.session.Field.ToggleTimeFreeze(true)

	if ev.Action.Def().SkipTimeFreezeIntro {
		st.beginExecution()
		return
	}
	st.phase = phaseAlert
}

// OnUpdate runs the banner window, then each queued action front to back.
func (st *TimeFreezeState) OnUpdate(elapsed frametime.FrameTime) {
	if st.done || len(st.queue) == 0 {
		st.tickFade(elapsed)
		return
	}

	switch st.phase {
	case phaseAlert:
		front := st.queue[0]
		front.AlertFrames += elapsed
		if front.AlertFrames >= alertWindowFrames {
			st.beginExecution()
		}
	case phaseExecute:
		st.tickExecution(elapsed)
	case phaseFade:
		st.tickFade(elapsed)
	}
}

// beginExecution hides the real actor, places the stunt double on its tile
// and starts the front action. Placement failure aborts the whole sequence
// straight to fade-out.
func (st *TimeFreezeState) beginExecution() {
	front := st.queue[0]

	double := entity.NewStuntDouble(st.session.NextEntityID(), front.Actor)
	st.session.Field.Remove(front.Actor.ID)
	if err := st.session.Field.Place(double.ID, double.Team, double.X, double.Y); err != nil {
		st.session.AbortRequested = true
		st.queue = st.queue[:0]
		st.done = true
		return
	}
	front.StuntDouble = double
	st.placedDouble = double
	st.hiddenActor = front.Actor

	st.phase = phaseExecute
	st.actionFrames = 0
	front.Action.Execute(front.Actor)
}

func (st *TimeFreezeState) tickExecution(elapsed frametime.FrameTime) {
	front := st.queue[0]
	front.Action.Tick(elapsed)
	st.actionFrames += elapsed

	if !front.Action.IsLockoutOver() && st.actionFrames < actionCapFrames {
		return
	}

	st.removeDouble()
	st.queue = st.queue[1:]
	if len(st.queue) == 0 {
		st.phase = phaseFade
		st.fadeFrames = 0
		return
	}
	// The next action skips its own banner; the counter window belongs to
	// the announcement, not to each action.
	st.beginExecution()
}

func (st *TimeFreezeState) tickFade(elapsed frametime.FrameTime) {
	st.fadeFrames += elapsed
	if st.fadeFrames >= freezeFadeFrames {
		st.done = true
	}
}

// removeDouble swaps the real actor back onto its tile.
func (st *TimeFreezeState) removeDouble() {
	if st.placedDouble == nil {
		return
	}
	st.session.Field.Remove(st.placedDouble.ID)
	st.placedDouble = nil
	if a := st.hiddenActor; a != nil && a.IsAlive() {
		st.session.Field.Place(a.ID, a.Team, a.X, a.Y)
	}
	st.hiddenActor = nil
}

// OnEnd clears the queue and unfreezes the field.
func (st *TimeFreezeState) OnEnd(next stategraph.State) {
	st.removeDouble()
	st.queue = st.queue[:0]
	st.session.Field.ToggleTimeFreeze(false)
}

// OnDraw draws nothing itself; the banner belongs to the renderer.
func (st *TimeFreezeState) OnDraw(surface stategraph.Surface) {}
