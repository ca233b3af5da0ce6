package battle

import (
	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/frametime"
)

// comboStepBound caps a combo simulation at ten minutes of simulated time.
// No reveal animation comes anywhere near it; hitting the bound means the
// advance table is broken.
const comboStepBound = 10 * 60 * frametime.FramesPerSecond

// ComboRun steps program-advance resolution one frame at a time against a
// private copy of a card list. The same run serves two callers: the combo
// state measures and applies the local player's advance, and the network
// layer dry-runs the opponent's hand from the handshake to learn how long
// the opponent's reveal animation takes.
//
// A run is a pure function of the card list it was given. Both networked
// clients execute it against the same transmitted hand and must land on the
// same frame count, so it never consults the session, the clock, or any
// randomness.
type ComboRun struct {
	advance  *cards.AdvanceDef
	ids      []string
	duration frametime.FrameTime
	elapsed  frametime.FrameTime
}

// NewComboRun copies the card list and resolves which advance, if any, it
// contains. The caller's slice is never retained or touched.
func NewComboRun(advances []cards.AdvanceDef, ids []string) *ComboRun {
	owned := append([]string(nil), ids...)
	run := &ComboRun{ids: owned}
	if adv := cards.FindAdvance(advances, owned); adv != nil {
		run.advance = adv
		run.duration = frametime.FrameTime(adv.RevealFrames)
	}
	return run
}

// StepFrame advances the simulation by one frame.
func (r *ComboRun) StepFrame() { r.elapsed++ }

// IsDone reports whether the reveal animation has run its course. A hand
// with no advance is done immediately.
func (r *ComboRun) IsDone() bool { return r.elapsed >= r.duration }

// Duration returns the total reveal animation length in frames.
func (r *ComboRun) Duration() frametime.FrameTime { return r.duration }

// Advance returns the matched advance, or nil.
func (r *ComboRun) Advance() *cards.AdvanceDef { return r.advance }

// FusedIDs returns the card list with the advance sequence replaced by its
// result card. With no advance it returns the list unchanged. The returned
// slice is freshly allocated.
func (r *ComboRun) FusedIDs() []string {
	if r.advance == nil {
		return append([]string(nil), r.ids...)
	}
	seq := r.advance.Sequence
	for start := 0; start+len(seq) <= len(r.ids); start++ {
		if !idsMatch(r.ids[start:start+len(seq)], seq) {
			continue
		}
		fused := append([]string(nil), r.ids[:start]...)
		fused = append(fused, r.advance.Result)
		fused = append(fused, r.ids[start+len(seq):]...)
		return fused
	}
	return append([]string(nil), r.ids...)
}

func idsMatch(got, want []string) bool {
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// SimulateComboDuration runs a combo resolution to completion in fixed
// one-frame increments and reports how long it took. This is the dry-run
// both clients perform on the opponent's transmitted hand to derive the
// shared round start delay.
func SimulateComboDuration(advances []cards.AdvanceDef, ids []string) frametime.FrameTime {
	run := NewComboRun(advances, ids)
	steps := frametime.FrameTime(0)
	for !run.IsDone() && steps < comboStepBound {
		run.StepFrame()
		steps++
	}
	return run.Duration()
}
