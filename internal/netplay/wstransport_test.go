package netplay

import (
	"testing"
	"time"
)

func bareTransport() *WSTransport {
	return &WSTransport{
		acked:  make(map[uint64]bool),
		sentAt: make(map[uint64]time.Time),
	}
}

func TestFramesSinceAckTracksOldestInFlight(t *testing.T) {
	tr := bareTransport()

	if got := tr.FramesSinceAck(); got != 0 {
		t.Fatalf("idle transport reports %v frames, want 0", got)
	}

	// Two packets in flight; the older one sets the reading.
	tr.sentAt[1] = time.Now().Add(-50 * time.Millisecond)
	tr.sentAt[2] = time.Now()
	if got := tr.FramesSinceAck(); got < 3 || got > 5 {
		t.Fatalf("50 ms in flight reports %v frames, want about 3", got)
	}

	tr.handleAck(1)
	if got := tr.FramesSinceAck(); got > 1 {
		t.Fatalf("after acking the old packet got %v frames, want at most 1", got)
	}

	tr.handleAck(2)
	if got := tr.FramesSinceAck(); got != 0 {
		t.Fatalf("all acked but still %v frames", got)
	}
}

func TestHandshakeAckRearmsOnNewID(t *testing.T) {
	tr := bareTransport()

	tr.handleAck(7)
	tr.UpdateHandshakeID(7)
	if !tr.IsHandshakeAck() {
		t.Fatal("acked handshake not reported")
	}

	// Tracking a fresh, unacked handshake must drop the ready reading until
	// its own ack arrives.
	tr.UpdateHandshakeID(8)
	if tr.IsHandshakeAck() {
		t.Fatal("new handshake reported acked before its ack arrived")
	}
	tr.handleAck(8)
	if !tr.IsHandshakeAck() {
		t.Fatal("new handshake ack not reported")
	}
}
