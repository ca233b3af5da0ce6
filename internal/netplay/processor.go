package netplay

import "log"

// abortErrorThreshold is how many consecutive decode failures the session
// tolerates before giving up on the link entirely. One bad datagram is
// logged and dropped; a stream of them means the peers disagree about the
// protocol and the session cannot be trusted.
const abortErrorThreshold = 10

// Processor is the packet receive path. It owns the RemoteState mirror and
// applies every reconciliation rule; rules are idempotent and tolerate
// reordering where the signal semantics allow it. Battle-level reactions
// (handshake dry runs, sync gate marks) are forwarded through callbacks so
// the processor stays free of battle rules.
type Processor struct {
	Remote *RemoteState

	mirrorX func(int) int

	onHandshake func(HandshakeMsg)
	onSync      func(syncIndex uint8)
	onFrameData func(FrameDataMsg)
	onTile      func(x, y int)
	onAbort     func()

	errorCount int
}

// NewProcessor creates a receive path whose tile reconciliation mirrors x
// through the given function (each client renders the opponent on the
// opposite side of the field).
func NewProcessor(mirrorX func(int) int) *Processor {
	return &Processor{
		Remote:  NewRemoteState(),
		mirrorX: mirrorX,
	}
}

// SetHandshakeCallback registers the battle-level handshake reaction,
// invoked after RemoteState has been updated.
func (p *Processor) SetHandshakeCallback(fn func(HandshakeMsg)) { p.onHandshake = fn }

// SetSyncCallback registers the sync gate reaction.
func (p *Processor) SetSyncCallback(fn func(syncIndex uint8)) { p.onSync = fn }

// SetFrameDataCallback registers the input replication reaction.
func (p *Processor) SetFrameDataCallback(fn func(FrameDataMsg)) { p.onFrameData = fn }

// SetTileCallback registers the position reaction, invoked with coordinates
// already mirrored into local space.
func (p *Processor) SetTileCallback(fn func(x, y int)) { p.onTile = fn }

// SetAbortCallback registers the handler fired when decode errors pass the
// abort threshold.
func (p *Processor) SetAbortCallback(fn func()) { p.onAbort = fn }

// ProcessBody dispatches one inbound packet by its discriminant. Malformed
// or unknown packets are logged no-ops: the session never crashes over one
// bad datagram, but repeated failures count toward session abort.
func (p *Processor) ProcessBody(sig Signal, payload []byte) {
	var err error
	switch sig {
	case SignalConnect:
		err = p.receiveConnect(payload)
	case SignalHandshake:
		err = p.receiveHandshake(payload)
	case SignalSync:
		err = p.receiveSync(payload)
	case SignalFrameData:
		err = p.receiveFrameData(payload)
	case SignalForm:
		err = p.receiveForm(payload)
	case SignalHP:
		err = p.receiveHP(payload)
	case SignalTile:
		err = p.receiveTile(payload)
	case SignalCardSelect:
		p.receiveCardSelect()
	case SignalLoser:
		p.receiveLoser()
	default:
		log.Printf("netplay: dropping packet with unknown signal %d", sig)
		return
	}

	if err != nil {
		p.errorCount++
		log.Printf("netplay: bad %s packet (%d/%d): %v", sig, p.errorCount, abortErrorThreshold, err)
		if p.errorCount >= abortErrorThreshold && p.onAbort != nil {
			p.onAbort()
		}
		return
	}
	p.errorCount = 0
}

func (p *Processor) receiveConnect(payload []byte) error {
	// Only the first connect counts.
	if p.Remote.RemoteConnected {
		return nil
	}

	m, err := DecodeConnect(payload)
	if err != nil {
		return err
	}

	p.Remote.RemoteConnected = true
	p.Remote.RemoteName = m.PlayerName
	p.Remote.RemoteMaxHP = int(m.MaxHP)
	p.Remote.RemoteHP = int(m.MaxHP)
	p.Remote.RemoteTileX = p.mirrorX(int(m.TileX))
	p.Remote.RemoteTileY = int(m.TileY)

	if p.onTile != nil {
		p.onTile(p.Remote.RemoteTileX, p.Remote.RemoteTileY)
	}
	return nil
}

func (p *Processor) receiveHandshake(payload []byte) error {
	if !p.Remote.RemoteConnected {
		return nil
	}

	m, err := DecodeHandshake(payload)
	if err != nil {
		return err
	}

	form := int(m.SelectedForm)
	p.Remote.RemoteFormChange = p.Remote.RemoteForm != form
	p.Remote.RemoteForm = form
	p.Remote.RemoteHand = append([]string(nil), m.CardIDs...)
	p.Remote.RemoteReady = true

	if p.onHandshake != nil {
		p.onHandshake(m)
	}
	return nil
}

func (p *Processor) receiveSync(payload []byte) error {
	m, err := DecodeSync(payload)
	if err != nil {
		return err
	}
	if p.onSync != nil {
		p.onSync(m.SyncIndex)
	}
	return nil
}

func (p *Processor) receiveFrameData(payload []byte) error {
	if !p.Remote.RemoteConnected {
		return nil
	}

	m, err := DecodeFrameData(payload)
	if err != nil {
		return err
	}

	if m.Frame > p.Remote.RemoteFrame {
		p.Remote.RemoteFrame = m.Frame
	}
	p.Remote.RemoteHP = int(m.HP)

	if p.onFrameData != nil {
		p.onFrameData(m)
	}
	return nil
}

func (p *Processor) receiveForm(payload []byte) error {
	if !p.Remote.RemoteConnected {
		return nil
	}

	m, err := DecodeForm(payload)
	if err != nil {
		return err
	}

	form := int(m.Form)
	// An unchanged form index is ignored so redundant announcements never
	// retrigger the transform animation.
	if form == p.Remote.RemoteForm {
		return nil
	}
	p.Remote.RemoteForm = form
	p.Remote.RemoteFormChange = true
	return nil
}

func (p *Processor) receiveHP(payload []byte) error {
	if !p.Remote.RemoteConnected {
		return nil
	}

	m, err := DecodeHP(payload)
	if err != nil {
		return err
	}

	// Last writer wins; no further conflict resolution.
	p.Remote.RemoteHP = int(m.HP)
	return nil
}

func (p *Processor) receiveTile(payload []byte) error {
	if !p.Remote.RemoteConnected {
		return nil
	}

	m, err := DecodeTile(payload)
	if err != nil {
		return err
	}

	p.Remote.RemoteTileX = p.mirrorX(int(m.X))
	p.Remote.RemoteTileY = int(m.Y)

	if p.onTile != nil {
		p.onTile(p.Remote.RemoteTileX, p.Remote.RemoteTileY)
	}
	return nil
}

func (p *Processor) receiveCardSelect() {
	if !p.Remote.RemoteConnected {
		return
	}
	p.Remote.OpenedCardSelect = true
}

func (p *Processor) receiveLoser() {
	// Unilateral: no ack, and a signal about an opponent we never saw
	// connect is meaningless.
	if !p.Remote.RemoteConnected {
		return
	}
	p.Remote.RemoteLoser = true
}
