package battle

import (
	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/frametime"
)

// CardAction is one executable card effect. Combat and the time-freeze state
// drive actions the same way: Execute once, Tick every frame, and hold
// whatever comes next until the lockout clears.
type CardAction interface {
	// Def returns the card definition the action was built from.
	Def() *cards.CardDef

	// CanExecute reports whether the action can start right now.
	CanExecute() bool

	// Execute applies the card's effect on behalf of the actor.
	Execute(actor *entity.Character)

	// Tick advances the action's animation and lockout timers.
	Tick(elapsed frametime.FrameTime)

	// IsAnimationOver reports whether the visible animation has finished.
	IsAnimationOver() bool

	// IsLockoutOver reports whether the action has released the battle.
	// For animation-lockout cards this tracks the animation; sequence
	// cards hold longer.
	IsLockoutOver() bool
}

// timedAction is the standard CardAction: damage or healing applied on
// Execute, then frame-counted animation and lockout windows from the card
// definition.
type timedAction struct {
	def     *cards.CardDef
	session *Session

	executed bool
	elapsed  frametime.FrameTime
}

// NewAction builds the executable action for a card. The session supplies
// targeting: damage cards hit the actor's current enemy, recovery cards heal
// the actor.
func NewAction(def *cards.CardDef, session *Session) CardAction {
	return &timedAction{def: def, session: session}
}

func (a *timedAction) Def() *cards.CardDef { return a.def }

func (a *timedAction) CanExecute() bool { return !a.executed }

func (a *timedAction) Execute(actor *entity.Character) {
	if a.executed {
		return
	}
	a.executed = true
	a.elapsed = 0

	if a.def.Damage <= 0 {
		// Zero-damage cards are either recovery or pure field effects.
		if heal := recoveryAmount(a.def); heal > 0 {
			actor.Heal(heal)
		}
		return
	}

	target := a.session.EnemyOf(actor)
	if target == nil {
		return
	}
	target.TakeDamage(a.def.Damage)
	if target.Form >= 0 {
		a.session.Decross(target)
	}
	if !target.IsAlive() {
		a.session.Field.Remove(target.ID)
	}
}

func (a *timedAction) Tick(elapsed frametime.FrameTime) {
	if !a.executed {
		return
	}
	a.elapsed += elapsed
}

func (a *timedAction) IsAnimationOver() bool {
	return a.executed && a.elapsed >= frametime.FrameTime(a.def.AnimationFrames)
}

func (a *timedAction) IsLockoutOver() bool {
	if !a.executed {
		return false
	}
	if a.def.LockoutType() == cards.LockoutSequence {
		return a.elapsed >= frametime.FrameTime(a.def.LockoutFrames)
	}
	return a.IsAnimationOver()
}

// recoveryAmount maps the recovery card family to its heal value.
func recoveryAmount(def *cards.CardDef) int {
	switch def.ID {
	case "Recover30":
		return 30
	default:
		return 0
	}
}
