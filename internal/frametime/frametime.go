// Package frametime provides the fixed frame clock used for all battle timing.
//
// The simulation runs at a canonical 60 frames per second. Every duration,
// cooldown and timer in the battle system is expressed as a whole number of
// frames so that outcomes are identical regardless of render frame-rate
// jitter. Wall-clock time only enters at the edges (latency measurements),
// and is always converted up-front.
package frametime

import "time"

// FramesPerSecond is the canonical simulation rate.
const FramesPerSecond = 60

// FrameTime is a discrete, non-negative count of simulation frames.
type FrameTime int64

// Frames returns a FrameTime of n frames. Negative inputs clamp to zero.
func Frames(n int64) FrameTime {
	if n < 0 {
		return 0
	}
	return FrameTime(n)
}

// FromSeconds converts a duration in seconds to whole frames, truncating.
func FromSeconds(s float64) FrameTime {
	if s <= 0 {
		return 0
	}
	return FrameTime(s * FramesPerSecond)
}

// FromMillisecondsCeil converts milliseconds to frames, rounding up.
// Delay values derived from measured latency use this so that a partially
// elapsed frame is never under-counted.
func FromMillisecondsCeil(ms float64) FrameTime {
	if ms <= 0 {
		return 0
	}
	frames := ms * FramesPerSecond / 1000.0
	whole := FrameTime(frames)
	if float64(whole) < frames {
		whole++
	}
	return whole
}

// FromDuration converts a time.Duration to whole frames, truncating.
func FromDuration(d time.Duration) FrameTime {
	if d <= 0 {
		return 0
	}
	return FrameTime(d * FramesPerSecond / time.Second)
}

// Count returns the raw frame count.
func (t FrameTime) Count() int64 { return int64(t) }

// Seconds returns the duration in seconds.
func (t FrameTime) Seconds() float64 { return float64(t) / FramesPerSecond }

// Milliseconds returns the duration in milliseconds.
func (t FrameTime) Milliseconds() float64 { return float64(t) * 1000.0 / FramesPerSecond }

// Duration returns the equivalent time.Duration.
func (t FrameTime) Duration() time.Duration {
	return time.Duration(t) * time.Second / FramesPerSecond
}

// Add returns t+other.
func (t FrameTime) Add(other FrameTime) FrameTime { return t + other }

// SubSaturate returns t-other, clamped at zero. "Time remaining" style
// fields use this so that they never go negative.
func (t FrameTime) SubSaturate(other FrameTime) FrameTime {
	if other >= t {
		return 0
	}
	return t - other
}
