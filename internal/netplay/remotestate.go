package netplay

// RemoteState mirrors the opponent's last-known battle facts. It is mutated
// exclusively by the packet receive path (Processor); battle states read it
// as additional edge conditions and data sources. Reset at the start of
// every session, discarded at session end.
type RemoteState struct {
	RemoteConnected bool   // connect received
	RemoteName      string // opponent display name
	RemoteReady     bool   // opponent passed its sync gate

	// Handshake-derived facts.
	RemoteForm       int      // last announced form index, -1 for base
	RemoteFormChange bool     // form differs from the previous value
	RemoteHand       []string // card ids from the latest handshake

	RemoteHP    int // last-writer-wins mirror
	RemoteMaxHP int
	RemoteTileX int // already mirrored into local coordinates
	RemoteTileY int

	// OpenedCardSelect is a one-shot event: set on receipt of card_select,
	// consumed (cleared) by the first battle state that reads it.
	OpenedCardSelect bool

	// RemoteLoser is set by the unilateral loser signal; receiving it ends
	// the local battle in our favor.
	RemoteLoser bool

	// RemoteFrame is the newest simulated frame number the opponent
	// reported via frame data.
	RemoteFrame uint32
}

// NewRemoteState returns a mirror ready for a new session.
func NewRemoteState() *RemoteState {
	rs := &RemoteState{}
	rs.Reset()
	return rs
}

// Reset restores session-start defaults.
func (rs *RemoteState) Reset() {
	*rs = RemoteState{RemoteForm: -1}
}

// ConsumeCardSelect returns whether the opponent opened its card widget
// since the last call, clearing the flag. Models a one-shot event carried
// over a stateful channel.
func (rs *RemoteState) ConsumeCardSelect() bool {
	opened := rs.OpenedCardSelect
	rs.OpenedCardSelect = false
	return opened
}
