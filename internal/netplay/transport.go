package netplay

import "github.com/samdwyer/netbattle/internal/frametime"

// Reliability selects the delivery class for an outbound packet. The
// protocol chooses ordered delivery for anything where a stale overwrite is
// wrong (input events) and tolerates unordered reliable delivery for
// idempotent last-value signals (hp, form, tile).
type Reliability uint8

const (
	// Unreliable packets may be dropped or reordered.
	Unreliable Reliability = iota
	// Reliable packets arrive eventually, possibly out of order.
	Reliable
	// ReliableOrdered packets arrive exactly once, in send order.
	ReliableOrdered
)

// Transport delivers framed buffers between the two peers. It is consumed as
// a black box: retry, ordering and latency measurement happen below this
// interface. Implementations must invoke callbacks only from Poll, so the
// simulation stays single-threaded; absence of inbound data on a given frame
// is a valid, expected outcome.
type Transport interface {
	// SendPacket transmits one signal-tagged buffer. The returned id
	// identifies the packet for ack tracking (see UpdateHandshakeID).
	SendPacket(class Reliability, payload []byte) (ok bool, id uint64)

	// SetPacketBodyCallback registers the receive handler. The transport
	// strips its own framing and hands over signal plus payload.
	SetPacketBodyCallback(fn func(sig Signal, payload []byte))

	// SetKickCallback registers the handler invoked when the silence
	// window elapses with no inbound traffic.
	SetKickCallback(fn func())

	// Poll drains the inbound queue, invoking the body callback for each
	// pending packet, and fires the kick callback on timeout. Non-blocking.
	Poll()

	// GetAvgLatency reports the rolling average round-trip latency in
	// milliseconds.
	GetAvgLatency() float64

	// FramesSinceAck reports how long the oldest in-flight reliable packet
	// has waited for its acknowledgement, in frames. Zero when nothing is
	// in flight.
	FramesSinceAck() frametime.FrameTime

	// UpdateHandshakeID marks the packet id whose acknowledgement gates
	// round start.
	UpdateHandshakeID(id uint64)

	// IsHandshakeAck reports whether the tracked handshake packet has been
	// acknowledged by the peer.
	IsHandshakeAck() bool

	// EnableKickForSilence toggles the silence timeout. Disabled during
	// loading screens, enabled once the battle is underway.
	EnableKickForSilence(enabled bool)

	// Close releases the underlying connection.
	Close() error
}
