// Package battle implements the battle rules as a set of states over the
// state graph: card selection, program-advance resolution, form changes,
// real-time combat, time-freeze interrupts and the end-of-battle flow. The
// same states run solo and networked; the networked graph adds sync gates
// and feeds remote data in through the session.
package battle

import (
	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/field"
	"github.com/samdwyer/netbattle/internal/frametime"
)

// GaugeFullFrames is how long the card gauge takes to refill after a round.
const GaugeFullFrames = frametime.FrameTime(512)

// FormData tracks one character's transformation bookkeeping. The network
// receive path flips AnimationComplete to false when the opponent announces
// a form; the form-change state consumes the flag and plays the animation.
type FormData struct {
	SelectedForm      int
	AnimationComplete bool
}

// Results accumulates the outcome shown on the rewards screen.
type Results struct {
	Won       bool
	Turns     int
	Counters  int
	DoubleDel bool // two enemies deleted by one attack
	Zenny     int
}

// Rank scores the battle from 1 to 11 the way the rewards screen displays
// it: fewer turns and more counters rank higher, with 11 reserved for a
// three-turn-or-better clear with at least three counters.
func (r Results) Rank() int {
	rank := 11 - r.Turns
	if rank < 1 {
		rank = 1
	}
	if rank > 10 {
		rank = 10
	}
	rank += r.Counters
	if r.DoubleDel {
		rank += 1
	}
	if rank > 10 {
		if r.Turns <= 3 && r.Counters >= 3 {
			return 11
		}
		return 10
	}
	return rank
}

// Session is the shared battle data every state reads and mutates. One
// Session lives exactly as long as its graph; nothing here survives the
// fade-out.
type Session struct {
	Field    *field.Field
	Player   *entity.Character
	Opponent *entity.Character // networked play; nil in solo
	Mob      *entity.Mob       // solo play; nil when networked

	Registry *cards.Registry
	Advances []cards.AdvanceDef

	// Forms is keyed by character id. Entries appear the first time a
	// character selects a form.
	Forms map[int]*FormData

	// PendingSelection, PendingForm, Confirmed and RetreatChoice are the
	// card widget's output, written by the UI layer (or the remote mirror
	// for the opponent) and consumed by the card-select state.
	PendingSelection []string
	PendingForm      int
	Confirmed        bool
	RetreatChoice    bool

	// Hand is the confirmed selection for the current round.
	Hand *cards.Hand

	Gauge frametime.FrameTime // card gauge progress, full at GaugeFullFrames

	TurnCount    int
	CounterCount int

	// UseCardRequested is the combat input edge for playing the next card.
	UseCardRequested bool

	// PendingFreeze carries a played time-freeze card from combat into the
	// time-freeze state.
	PendingFreeze *TimeFreezeEvent

	PlayerWon  bool
	PlayerLost bool

	// AbortRequested short-circuits to fade-out: transport kick, protocol
	// error threshold, or stunt-double placement failure.
	AbortRequested bool

	// Completed is set by the fade-out state; the game loop quits the
	// graph when it sees it.
	Completed bool

	Results Results

	nextEntityID int
}

// NewSession creates a session around a field and the local player. Mob or
// Opponent is filled in by the solo/network graph builders.
func NewSession(f *field.Field, player *entity.Character, registry *cards.Registry, advances []cards.AdvanceDef) *Session {
	return &Session{
		Field:        f,
		Player:       player,
		Registry:     registry,
		Advances:     advances,
		Forms:        map[int]*FormData{},
		PendingForm:  -1,
		nextEntityID: 1000,
	}
}

// NextEntityID hands out ids for entities spawned mid-battle, such as stunt
// doubles.
func (s *Session) NextEntityID() int {
	s.nextEntityID++
	return s.nextEntityID
}

// FormFor returns the tracked form data for a character, creating the base
// record on first use.
func (s *Session) FormFor(c *entity.Character) *FormData {
	fd, ok := s.Forms[c.ID]
	if !ok {
		fd = &FormData{SelectedForm: -1, AnimationComplete: true}
		s.Forms[c.ID] = fd
	}
	return fd
}

// FormShouldChange reports whether any tracked character has a pending form
// animation. Combat checks this every tick to catch mid-round decrosses.
func (s *Session) FormShouldChange() bool {
	for _, fd := range s.Forms {
		if !fd.AnimationComplete {
			return true
		}
	}
	return false
}

// Decross forces a character back to base form, queueing the revert
// animation. Triggered by taking a hit while transformed.
func (s *Session) Decross(c *entity.Character) {
	fd := s.FormFor(c)
	if c.Form < 0 {
		return
	}
	fd.SelectedForm = -1
	fd.AnimationComplete = false
}

// GaugeFull reports whether the card gauge has refilled.
func (s *Session) GaugeFull() bool { return s.Gauge >= GaugeFullFrames }

// EnemyOf returns the target a card played by c should hit: the opponent in
// networked play, the first living mob enemy in solo.
func (s *Session) EnemyOf(c *entity.Character) *entity.Character {
	if s.Opponent != nil {
		if c == s.Opponent {
			return s.Player
		}
		return s.Opponent
	}
	if s.Mob != nil {
		if c != s.Player {
			return s.Player
		}
		for _, e := range s.Mob.Enemies {
			if e.IsAlive() {
				return e
			}
		}
	}
	return nil
}
