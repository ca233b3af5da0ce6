// Package game provides the fixed-timestep loop that drives a battle.
package game

// Mode selects how a session is set up.
type Mode int

const (
	// ModeSolo runs a scripted mob encounter with no networking.
	ModeSolo Mode = iota
	// ModeHost creates a relay match and waits for a challenger.
	ModeHost
	// ModeJoin connects to an existing relay match.
	ModeJoin
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeSolo:
		return "solo"
	case ModeHost:
		return "host"
	case ModeJoin:
		return "join"
	default:
		return "unknown"
	}
}
