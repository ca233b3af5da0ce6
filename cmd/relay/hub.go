package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// ErrMatchFull is returned when a third peer tries to join a match.
var ErrMatchFull = errors.New("match already has two peers")

// ErrNoSuchMatch is returned for unknown or expired match codes.
var ErrNoSuchMatch = errors.New("no such match")

// match pairs two peers. Frames are forwarded verbatim; the relay never
// inspects battle payloads.
type match struct {
	code  string
	mu    sync.Mutex
	peers []*websocket.Conn
}

// Hub owns the live matches.
type Hub struct {
	mu      sync.Mutex
	matches map[string]*match
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{matches: make(map[string]*match)}
}

// CreateMatch registers a new match and returns its code.
func (h *Hub) CreateMatch() string {
	code := strings.Split(uuid.NewString(), "-")[0]

	h.mu.Lock()
	defer h.mu.Unlock()
	h.matches[code] = &match{code: code}
	return code
}

// Join attaches a peer to a match and, once both sides are present, forwards
// frames between them until either connection drops. Blocks for the life of
// the connection.
func (h *Hub) Join(ctx context.Context, code string, conn *websocket.Conn) error {
	h.mu.Lock()
	m, ok := h.matches[code]
	h.mu.Unlock()
	if !ok {
		return ErrNoSuchMatch
	}

	m.mu.Lock()
	if len(m.peers) >= 2 {
		m.mu.Unlock()
		return ErrMatchFull
	}
	m.peers = append(m.peers, conn)
	seat := len(m.peers) - 1
	m.mu.Unlock()

	log.Printf("relay: match %s seat %d connected", code, seat)
	defer h.leave(code)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		peer := m.other(conn)
		if peer == nil {
			// Alone in the match; drop frames until the opponent arrives.
			continue
		}
		if err := peer.Write(ctx, typ, data); err != nil {
			return err
		}
	}
}

// other returns the opposite peer, or nil while the match is half-full.
func (m *match) other(conn *websocket.Conn) *websocket.Conn {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.peers {
		if p != conn {
			return p
		}
	}
	return nil
}

// leave tears the whole match down; a battle cannot survive either peer
// disconnecting.
func (h *Hub) leave(code string) {
	h.mu.Lock()
	m, ok := h.matches[code]
	delete(h.matches, code)
	h.mu.Unlock()
	if !ok {
		return
	}

	m.mu.Lock()
	peers := m.peers
	m.peers = nil
	m.mu.Unlock()
	for _, p := range peers {
		p.Close(websocket.StatusGoingAway, "match closed")
	}
	log.Printf("relay: match %s closed", code)
}
