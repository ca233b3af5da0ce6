package netplay

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/samdwyer/netbattle/internal/frametime"
)

// Transport-level frame classes. User payloads travel under their
// Reliability value; the remaining classes are control frames that never
// reach the packet body callback.
const (
	frameAck  uint8 = 3
	framePing uint8 = 4
	framePong uint8 = 5
)

const (
	writeTimeout  = 3 * time.Second
	pingInterval  = time.Second
	silenceWindow = 5 * time.Second
	inboundDepth  = 256
)

type inboundPacket struct {
	sig     Signal
	payload []byte
}

// WSTransport carries the battle protocol over a websocket link through the
// relay. The websocket is already reliable and ordered, so the delivery
// classes are accepted for interface fidelity rather than implemented as
// distinct mechanisms; what the transport adds is ack tracking, latency
// measurement and the silence kick.
//
// A single receive goroutine feeds a buffered queue; callbacks fire only
// from Poll, on the simulation thread.
type WSTransport struct {
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc

	sendMu sync.Mutex
	nextID uint64

	mu           sync.Mutex
	acked        map[uint64]bool
	sentAt       map[uint64]time.Time
	handshakeID  uint64
	hasHandshake bool
	avgLatency   float64
	lastRecv     time.Time
	lastPing     time.Time

	inbound chan inboundPacket

	bodyCallback func(sig Signal, payload []byte)
	kickCallback func()
	kickEnabled  bool
	kicked       bool
}

// NewWSTransport wraps an accepted or dialed websocket connection and starts
// its receive loop.
func NewWSTransport(conn *websocket.Conn) *WSTransport {
	ctx, cancel := context.WithCancel(context.Background())
	t := &WSTransport{
		conn:     conn,
		ctx:      ctx,
		cancel:   cancel,
		acked:    make(map[uint64]bool),
		sentAt:   make(map[uint64]time.Time),
		inbound:  make(chan inboundPacket, inboundDepth),
		lastRecv: time.Now(),
		nextID:   1,
	}
	go t.receiveLoop()
	return t
}

// Dial connects to a relay match endpoint and returns a ready transport.
func Dial(ctx context.Context, url string) (*WSTransport, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	conn.SetReadLimit(1 << 16)
	return NewWSTransport(conn), nil
}

// SendPacket transmits one signal-tagged buffer and returns its packet id.
func (t *WSTransport) SendPacket(class Reliability, payload []byte) (bool, uint64) {
	t.sendMu.Lock()
	id := t.nextID
	t.nextID++
	t.sendMu.Unlock()

	if class == Reliable || class == ReliableOrdered {
		t.mu.Lock()
		t.sentAt[id] = time.Now()
		t.mu.Unlock()
	}

	if err := t.writeFrame(uint8(class), id, payload); err != nil {
		log.Printf("netplay: send failed: %v", err)
		t.mu.Lock()
		delete(t.sentAt, id)
		t.mu.Unlock()
		return false, id
	}
	return true, id
}

// SetPacketBodyCallback registers the receive handler invoked from Poll.
func (t *WSTransport) SetPacketBodyCallback(fn func(sig Signal, payload []byte)) {
	t.bodyCallback = fn
}

// SetKickCallback registers the silence-timeout handler invoked from Poll.
func (t *WSTransport) SetKickCallback(fn func()) {
	t.kickCallback = fn
}

// EnableKickForSilence toggles the silence timeout.
func (t *WSTransport) EnableKickForSilence(enabled bool) {
	t.mu.Lock()
	t.kickEnabled = enabled
	t.mu.Unlock()
}

// UpdateHandshakeID marks the packet whose acknowledgement gates round start.
func (t *WSTransport) UpdateHandshakeID(id uint64) {
	t.mu.Lock()
	t.handshakeID = id
	t.hasHandshake = true
	t.mu.Unlock()
}

// IsHandshakeAck reports whether the tracked handshake packet was acked.
func (t *WSTransport) IsHandshakeAck() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasHandshake && t.acked[t.handshakeID]
}

// FramesSinceAck reports the age of the oldest reliable packet still waiting
// for its acknowledgement, in frames. Zero when nothing is in flight.
func (t *WSTransport) FramesSinceAck() frametime.FrameTime {
	t.mu.Lock()
	defer t.mu.Unlock()
	var oldest time.Time
	for _, at := range t.sentAt {
		if oldest.IsZero() || at.Before(oldest) {
			oldest = at
		}
	}
	if oldest.IsZero() {
		return 0
	}
	return frametime.FromMillisecondsCeil(float64(time.Since(oldest).Microseconds()) / 1000.0)
}

// GetAvgLatency reports the rolling average round-trip time in milliseconds.
func (t *WSTransport) GetAvgLatency() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.avgLatency
}

// Poll drains pending inbound packets into the body callback, keeps the
// latency probe running, and fires the kick callback when the silence window
// elapses. Non-blocking: an empty queue is the expected common case.
func (t *WSTransport) Poll() {
	for {
		select {
		case pkt := <-t.inbound:
			if t.bodyCallback != nil {
				t.bodyCallback(pkt.sig, pkt.payload)
			}
		default:
			t.maintain()
			return
		}
	}
}

// maintain sends the periodic latency probe and checks the silence window.
func (t *WSTransport) maintain() {
	now := time.Now()

	t.mu.Lock()
	needPing := now.Sub(t.lastPing) >= pingInterval
	if needPing {
		t.lastPing = now
	}
	silent := t.kickEnabled && !t.kicked && now.Sub(t.lastRecv) > silenceWindow
	if silent {
		t.kicked = true
	}
	kick := t.kickCallback
	t.mu.Unlock()

	if needPing {
		// The ping id carries the send time; the peer echoes it back.
		if err := t.writeFrame(framePing, uint64(now.UnixNano()), nil); err != nil {
			log.Printf("netplay: ping failed: %v", err)
		}
	}
	if silent && kick != nil {
		kick()
	}
}

// Close stops the receive loop and releases the connection.
func (t *WSTransport) Close() error {
	t.cancel()
	return t.conn.Close(websocket.StatusNormalClosure, "bye")
}

func (t *WSTransport) writeFrame(class uint8, id uint64, payload []byte) error {
	frame := make([]byte, 0, 9+len(payload))
	frame = append(frame, class)
	var idBytes [8]byte
	for i := 0; i < 8; i++ {
		idBytes[i] = byte(id >> (8 * i))
	}
	frame = append(frame, idBytes[:]...)
	frame = append(frame, payload...)

	ctx, cancel := context.WithTimeout(t.ctx, writeTimeout)
	defer cancel()

	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	return t.conn.Write(ctx, websocket.MessageBinary, frame)
}

func (t *WSTransport) receiveLoop() {
	for {
		_, data, err := t.conn.Read(t.ctx)
		if err != nil {
			// Normal teardown or a dead link; the silence window surfaces
			// the latter to the session.
			return
		}
		if len(data) < 9 {
			log.Printf("netplay: dropping truncated frame (%d bytes)", len(data))
			continue
		}

		class := data[0]
		var id uint64
		for i := 0; i < 8; i++ {
			id |= uint64(data[1+i]) << (8 * i)
		}
		body := data[9:]

		t.mu.Lock()
		t.lastRecv = time.Now()
		t.mu.Unlock()

		switch class {
		case framePing:
			if err := t.writeFrame(framePong, id, nil); err != nil {
				log.Printf("netplay: pong failed: %v", err)
			}
		case framePong:
			rtt := time.Since(time.Unix(0, int64(id)))
			t.recordLatency(float64(rtt.Microseconds()) / 1000.0)
		case frameAck:
			t.handleAck(id)
		default:
			// User data. Reliable classes are acknowledged on receipt.
			if Reliability(class) == Reliable || Reliability(class) == ReliableOrdered {
				if err := t.writeFrame(frameAck, id, nil); err != nil {
					log.Printf("netplay: ack failed: %v", err)
				}
			}
			sig, payload, err := SplitSignal(body)
			if err != nil {
				log.Printf("netplay: dropping empty packet body: %v", err)
				continue
			}
			select {
			case t.inbound <- inboundPacket{sig: sig, payload: payload}:
			default:
				log.Printf("netplay: inbound queue full, dropping %s packet", sig)
			}
		}
	}
}

// handleAck records the peer's acknowledgement and retires the in-flight
// entry it was timing.
func (t *WSTransport) handleAck(id uint64) {
	t.mu.Lock()
	t.acked[id] = true
	delete(t.sentAt, id)
	t.mu.Unlock()
}

// recordLatency folds one sample into the rolling average.
func (t *WSTransport) recordLatency(ms float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.avgLatency == 0 {
		t.avgLatency = ms
		return
	}
	t.avgLatency = t.avgLatency*0.8 + ms*0.2
}
