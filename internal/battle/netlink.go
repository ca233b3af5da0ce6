package battle

import (
	"log"

	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/frametime"
	"github.com/samdwyer/netbattle/internal/netplay"
	"github.com/samdwyer/netbattle/internal/stategraph"
)

// Sync gate indices, in graph order.
const (
	SyncConnect uint8 = iota
	SyncHandshake
	SyncCombo
)

// NetLink wires a battle session to the transport: it owns the remote
// mirror, sends the local player's signals, and turns the received
// handshake into the shared round start delay.
type NetLink struct {
	Transport netplay.Transport
	Remote    *netplay.RemoteState
	Processor *netplay.Processor

	session *Session

	// battleStart receives the derived round start delay.
	battleStart *BattleStartState

	remoteSync [3]bool

	// remoteHand replays the opponent's announced hand card by card.
	remoteHand *cards.Hand

	// pendingInputs holds local input edges queued for the next frame-data
	// flush. Edges are queued when an action actually happens, not on the
	// keypress, so the peer's replay never runs ahead of our simulation.
	pendingInputs []netplay.InputEvent

	// remoteChoosing latches the peer's one-shot card widget cue until its
	// handshake arrives.
	remoteChoosing bool

	roundStartDelay frametime.FrameTime
}

// NewNetLink builds the link and registers the receive path on the
// transport. The session's field supplies the tile mirror.
func NewNetLink(session *Session, transport netplay.Transport) *NetLink {
	link := &NetLink{
		Transport: transport,
		session:   session,
	}
	link.Processor = netplay.NewProcessor(session.Field.MirrorX)
	link.Remote = link.Processor.Remote

	link.Processor.SetSyncCallback(func(idx uint8) {
		if int(idx) < len(link.remoteSync) {
			link.remoteSync[idx] = true
		}
	})
	link.Processor.SetHandshakeCallback(link.onHandshake)
	link.Processor.SetFrameDataCallback(link.onFrameData)
	link.Processor.SetTileCallback(link.moveOpponent)
	link.Processor.SetAbortCallback(func() {
		session.AbortRequested = true
	})

	transport.SetPacketBodyCallback(link.Processor.ProcessBody)
	transport.SetKickCallback(func() {
		session.AbortRequested = true
	})
	transport.EnableKickForSilence(true)
	return link
}

// SendConnect announces the local player.
func (l *NetLink) SendConnect() {
	msg := netplay.ConnectMsg{
		PlayerName: l.session.Player.Name,
		TileX:      int32(l.session.Player.X),
		TileY:      int32(l.session.Player.Y),
		MaxHP:      int32(l.session.Player.MaxHP),
	}
	raw, err := msg.Encode()
	if err != nil {
		log.Printf("battle: encode connect: %v", err)
		return
	}
	l.Transport.SendPacket(netplay.Reliable, raw)
}

// SendHandshake transmits the confirmed hand and form, and tracks the packet
// so the sync gate can wait for its acknowledgement.
func (l *NetLink) SendHandshake(cardIDs []string, form int) {
	msg := netplay.HandshakeMsg{
		SyncIndex:    SyncHandshake,
		SelectedForm: int32(form),
		CardIDs:      cardIDs,
	}
	raw, err := msg.Encode()
	if err != nil {
		log.Printf("battle: encode handshake: %v", err)
		return
	}
	ok, id := l.Transport.SendPacket(netplay.ReliableOrdered, raw)
	if ok {
		l.Transport.UpdateHandshakeID(id)
	}
}

// SendSync marks the local side ready at the numbered gate.
func (l *NetLink) SendSync(idx uint8) {
	l.Transport.SendPacket(netplay.ReliableOrdered, netplay.SyncMsg{SyncIndex: idx}.Encode())
}

// SendCardSelectOpen announces that the local card widget opened.
func (l *NetLink) SendCardSelectOpen() {
	w := netplay.NewWriter(netplay.SignalCardSelect)
	l.Transport.SendPacket(netplay.Reliable, w.Bytes())
}

// SendLoser concedes the battle. Fire-and-forget: the connection is about
// to close either way.
func (l *NetLink) SendLoser() {
	w := netplay.NewWriter(netplay.SignalLoser)
	l.Transport.SendPacket(netplay.Reliable, w.Bytes())
}

// SendHP publishes the local player's health.
func (l *NetLink) SendHP() {
	l.Transport.SendPacket(netplay.Reliable, netplay.HPMsg{HP: int32(l.session.Player.HP)}.Encode())
}

// SendTile publishes the local player's tile in local coordinates; the peer
// mirrors it.
func (l *NetLink) SendTile() {
	msg := netplay.TileMsg{X: int32(l.session.Player.X), Y: int32(l.session.Player.Y)}
	l.Transport.SendPacket(netplay.Reliable, msg.Encode())
}

// SendForm publishes a form change.
func (l *NetLink) SendForm(form int) {
	l.Transport.SendPacket(netplay.Reliable, netplay.FormMsg{Form: int32(form)}.Encode())
}

// AttachBattleStart points the link at the banner state so handshake receipt
// can install the derived delay.
func (l *NetLink) AttachBattleStart(st *BattleStartState) {
	l.battleStart = st
	if l.roundStartDelay > 0 {
		st.SetStartupDelay(l.roundStartDelay)
	}
}

// QueueInput records a local input edge for the next frame-data flush.
func (l *NetLink) QueueInput(name string) {
	l.pendingInputs = append(l.pendingInputs, netplay.InputEvent{Name: name, Pressed: true})
}

// DrainInputs returns the queued input edges and clears the queue.
func (l *NetLink) DrainInputs() []netplay.InputEvent {
	evs := l.pendingInputs
	l.pendingInputs = nil
	return evs
}

// RemoteChoosingCards reports whether the peer is inside its card widget.
// The underlying signal is one-shot; the cue holds until the peer's next
// handshake confirms its selection.
func (l *NetLink) RemoteChoosingCards() bool {
	if l.Remote != nil && l.Remote.ConsumeCardSelect() {
		l.remoteChoosing = true
	}
	return l.remoteChoosing
}

// RemoteSynced reports whether the peer has passed the numbered gate.
func (l *NetLink) RemoteSynced(idx uint8) bool {
	if int(idx) >= len(l.remoteSync) {
		return false
	}
	return l.remoteSync[idx]
}

// RoundStartDelay returns the delay derived from the last handshake.
func (l *NetLink) RoundStartDelay() frametime.FrameTime { return l.roundStartDelay }

// onHandshake dry-runs the opponent's hand and derives the round start
// delay: the opponent's reveal animation length plus measured latency,
// rounded up to whole frames. Both clients compute this from data both now
// hold, so they enter combat on the same simulated frame without ever
// agreeing on a clock.
func (l *NetLink) onHandshake(msg netplay.HandshakeMsg) {
	comboMS := SimulateComboDuration(l.session.Advances, msg.CardIDs).Milliseconds()
	l.roundStartDelay = frametime.FromMillisecondsCeil(comboMS + l.Transport.GetAvgLatency())
	if l.battleStart != nil {
		l.battleStart.SetStartupDelay(l.roundStartDelay)
	}
	if int(msg.SyncIndex) < len(l.remoteSync) {
		l.remoteSync[msg.SyncIndex] = true
	}
	l.remoteHand = cards.NewHand(msg.CardIDs)
	l.remoteChoosing = false

	// Mirror the opponent's confirmed hand and form onto their character.
	if l.session.Opponent != nil {
		fd := l.session.FormFor(l.session.Opponent)
		if fd.SelectedForm != int(msg.SelectedForm) {
			fd.SelectedForm = int(msg.SelectedForm)
			fd.AnimationComplete = false
		}
	}
}

// onFrameData applies the opponent's replicated inputs and health. Movement
// arrives pre-mirrored through the tile signal; the input edges replayed
// here are the action presses.
func (l *NetLink) onFrameData(msg netplay.FrameDataMsg) {
	opp := l.session.Opponent
	if opp == nil {
		return
	}
	opp.SetHealth(int(msg.HP))
	for _, ev := range msg.Events {
		if ev.Pressed && ev.Name == "use_card" {
			l.playRemoteCard()
		}
	}
}

// playRemoteCard resolves the opponent's next card from the hand it
// announced in the handshake, hitting our local mirror of the battle.
func (l *NetLink) playRemoteCard() {
	if l.remoteHand == nil {
		return
	}
	id, ok := l.remoteHand.DropNext()
	if !ok {
		return
	}
	def := l.session.Registry.GetByID(id)
	if def == nil {
		return
	}
	action := NewAction(def, l.session)
	if def.TimeFreeze {
		l.session.PendingFreeze = NewTimeFreezeEvent(l.session.Opponent, action)
		return
	}
	action.Execute(l.session.Opponent)

	// The card just resolved against our side; publish the new health
	// instead of waiting out the periodic frame-data flush.
	l.SendHP()
}

// moveOpponent applies a received tile update, already mirrored into local
// coordinates, to the opponent character and the field's occupancy.
func (l *NetLink) moveOpponent(x, y int) {
	opp := l.session.Opponent
	if opp == nil || (opp.X == x && opp.Y == y) {
		return
	}
	if err := l.session.Field.Move(opp.ID, opp.Team, opp.X, opp.Y, x, y); err != nil {
		return
	}
	opp.X, opp.Y = x, y
}

// SyncGateState blocks graph progression until the local side has marked
// ready, the remote's matching sync (or handshake) arrived, and, for the
// handshake gate, the transport confirmed the peer holds our hand.
type SyncGateState struct {
	baseState
	link *NetLink
	idx  uint8

	needAck    bool
	localReady bool
}

// NewSyncGateState creates the gate for one sync index.
func NewSyncGateState(link *NetLink, idx uint8, needAck bool) *SyncGateState {
	return &SyncGateState{link: link, idx: idx, needAck: needAck}
}

// OnStart announces local readiness to the peer.
func (st *SyncGateState) OnStart(prev stategraph.State) {
	st.localReady = true
	st.link.SendSync(st.idx)
}

// OnEnd consumes both sides' marks. The gates sit inside the round loop, so
// a mark left standing would let a later round through on the previous
// round's exchange.
func (st *SyncGateState) OnEnd(next stategraph.State) {
	st.localReady = false
	if int(st.idx) < len(st.link.remoteSync) {
		st.link.remoteSync[st.idx] = false
	}
}

// Ready is the edge condition out of the gate.
func (st *SyncGateState) Ready() bool {
	if !st.localReady || !st.link.RemoteSynced(st.idx) {
		return false
	}
	if st.needAck && !st.link.Transport.IsHandshakeAck() {
		return false
	}
	return true
}
