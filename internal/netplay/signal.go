// Package netplay keeps two independently-simulated battle clients converging
// on one outcome.
//
// Every message starts with a one-byte signal discriminant followed by a
// type-specific payload with explicit length prefixes for variable-length
// fields, so the receive path can dispatch without out-of-band schema. The
// receive path owns the RemoteState mirror; battle states read it as extra
// edge conditions and data sources but never write it.
package netplay

// Signal is the one-byte discriminant at the head of every message.
type Signal uint8

const (
	// SignalNone is the invalid zero value.
	SignalNone Signal = iota
	// SignalConnect announces the peer and its chosen character.
	SignalConnect
	// SignalHandshake carries the selected form and card list for a round.
	SignalHandshake
	// SignalSync marks a sync gate as requested by the sender.
	SignalSync
	// SignalFrameData carries buffered input events plus an hp piggyback.
	SignalFrameData
	// SignalForm announces a mid-session form index change.
	SignalForm
	// SignalHP overwrites the sender's mirrored health.
	SignalHP
	// SignalTile overwrites the sender's mirrored tile coordinates.
	SignalTile
	// SignalCardSelect is a one-shot "opened the card widget" event.
	SignalCardSelect
	// SignalLoser is the sender conceding; unilateral, no ack expected.
	SignalLoser
)

// String returns the signal name for logging.
func (s Signal) String() string {
	switch s {
	case SignalConnect:
		return "connect"
	case SignalHandshake:
		return "handshake"
	case SignalSync:
		return "sync"
	case SignalFrameData:
		return "frame_data"
	case SignalForm:
		return "form"
	case SignalHP:
		return "hp"
	case SignalTile:
		return "tile"
	case SignalCardSelect:
		return "card_select"
	case SignalLoser:
		return "loser"
	default:
		return "unknown"
	}
}
