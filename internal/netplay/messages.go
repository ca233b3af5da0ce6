package netplay

import "fmt"

// ConnectMsg announces the peer: which character it plays and where it
// stands. Sent once; duplicates are ignored by the receiver.
type ConnectMsg struct {
	PlayerName string
	TileX      int32
	TileY      int32
	MaxHP      int32
}

// Encode serializes the message with its signal discriminant.
func (m ConnectMsg) Encode() ([]byte, error) {
	w := NewWriter(SignalConnect)
	if err := w.String8(m.PlayerName); err != nil {
		return nil, err
	}
	w.Int32(m.TileX)
	w.Int32(m.TileY)
	w.Int32(m.MaxHP)
	return w.Bytes(), nil
}

// DecodeConnect parses a connect payload.
func DecodeConnect(payload []byte) (ConnectMsg, error) {
	r := NewReader(payload)
	var m ConnectMsg
	var err error
	if m.PlayerName, err = r.String8(); err != nil {
		return m, fmt.Errorf("connect: %w", err)
	}
	if m.TileX, err = r.Int32(); err != nil {
		return m, fmt.Errorf("connect: %w", err)
	}
	if m.TileY, err = r.Int32(); err != nil {
		return m, fmt.Errorf("connect: %w", err)
	}
	if m.MaxHP, err = r.Int32(); err != nil {
		return m, fmt.Errorf("connect: %w", err)
	}
	return m, nil
}

// HandshakeMsg carries everything the opponent needs to pre-simulate our
// turn: the selected form and the ordered card list. Exchanged once per
// round over the reliable-ordered channel.
type HandshakeMsg struct {
	SyncIndex    uint8
	SelectedForm int32
	CardIDs      []string
}

// Encode serializes the message with its signal discriminant.
func (m HandshakeMsg) Encode() ([]byte, error) {
	w := NewWriter(SignalHandshake)
	w.Uint8(m.SyncIndex)
	w.Int32(m.SelectedForm)
	if len(m.CardIDs) > 0xff {
		return nil, fmt.Errorf("handshake: %w: %d cards", ErrStringTooLong, len(m.CardIDs))
	}
	w.Uint8(uint8(len(m.CardIDs)))
	for _, id := range m.CardIDs {
		if err := w.String8(id); err != nil {
			return nil, fmt.Errorf("handshake: %w", err)
		}
	}
	return w.Bytes(), nil
}

// DecodeHandshake parses a handshake payload.
func DecodeHandshake(payload []byte) (HandshakeMsg, error) {
	r := NewReader(payload)
	var m HandshakeMsg
	var err error
	if m.SyncIndex, err = r.Uint8(); err != nil {
		return m, fmt.Errorf("handshake: %w", err)
	}
	if m.SelectedForm, err = r.Int32(); err != nil {
		return m, fmt.Errorf("handshake: %w", err)
	}
	count, err := r.Uint8()
	if err != nil {
		return m, fmt.Errorf("handshake: %w", err)
	}
	for i := 0; i < int(count); i++ {
		id, err := r.String8()
		if err != nil {
			return m, fmt.Errorf("handshake card %d: %w", i, err)
		}
		m.CardIDs = append(m.CardIDs, id)
	}
	return m, nil
}

// SyncMsg marks the sender as ready at the numbered sync gate.
type SyncMsg struct {
	SyncIndex uint8
}

// Encode serializes the message with its signal discriminant.
func (m SyncMsg) Encode() []byte {
	w := NewWriter(SignalSync)
	w.Uint8(m.SyncIndex)
	return w.Bytes()
}

// DecodeSync parses a sync payload.
func DecodeSync(payload []byte) (SyncMsg, error) {
	r := NewReader(payload)
	var m SyncMsg
	var err error
	if m.SyncIndex, err = r.Uint8(); err != nil {
		return m, fmt.Errorf("sync: %w", err)
	}
	return m, nil
}

// InputEvent is one named input edge (pressed/released) from the local
// player, replicated so the remote can replay our actions.
type InputEvent struct {
	Name    string
	Pressed bool
}

// FrameDataMsg carries the input events for one simulated frame, with the
// sender's hp piggybacked so health stays fresh without separate traffic.
// Sent reliable-ordered: stale input overwrites would corrupt the replay.
type FrameDataMsg struct {
	Frame  uint32
	HP     int32
	Events []InputEvent
}

// Encode serializes the message with its signal discriminant.
func (m FrameDataMsg) Encode() ([]byte, error) {
	w := NewWriter(SignalFrameData)
	w.Uint32(m.Frame)
	w.Int32(m.HP)
	if len(m.Events) > 0xff {
		return nil, fmt.Errorf("frame_data: %w: %d events", ErrStringTooLong, len(m.Events))
	}
	w.Uint8(uint8(len(m.Events)))
	for _, ev := range m.Events {
		if err := w.String8(ev.Name); err != nil {
			return nil, fmt.Errorf("frame_data: %w", err)
		}
		w.Bool(ev.Pressed)
	}
	return w.Bytes(), nil
}

// DecodeFrameData parses a frame_data payload.
func DecodeFrameData(payload []byte) (FrameDataMsg, error) {
	r := NewReader(payload)
	var m FrameDataMsg
	var err error
	if m.Frame, err = r.Uint32(); err != nil {
		return m, fmt.Errorf("frame_data: %w", err)
	}
	if m.HP, err = r.Int32(); err != nil {
		return m, fmt.Errorf("frame_data: %w", err)
	}
	count, err := r.Uint8()
	if err != nil {
		return m, fmt.Errorf("frame_data: %w", err)
	}
	for i := 0; i < int(count); i++ {
		var ev InputEvent
		if ev.Name, err = r.String8(); err != nil {
			return m, fmt.Errorf("frame_data event %d: %w", i, err)
		}
		if ev.Pressed, err = r.Bool(); err != nil {
			return m, fmt.Errorf("frame_data event %d: %w", i, err)
		}
		m.Events = append(m.Events, ev)
	}
	return m, nil
}

// FormMsg announces a form index change.
type FormMsg struct {
	Form int32
}

// Encode serializes the message with its signal discriminant.
func (m FormMsg) Encode() []byte {
	w := NewWriter(SignalForm)
	w.Int32(m.Form)
	return w.Bytes()
}

// DecodeForm parses a form payload.
func DecodeForm(payload []byte) (FormMsg, error) {
	r := NewReader(payload)
	var m FormMsg
	var err error
	if m.Form, err = r.Int32(); err != nil {
		return m, fmt.Errorf("form: %w", err)
	}
	return m, nil
}

// HPMsg overwrites the sender's mirrored health, last-writer-wins.
type HPMsg struct {
	HP int32
}

// Encode serializes the message with its signal discriminant.
func (m HPMsg) Encode() []byte {
	w := NewWriter(SignalHP)
	w.Int32(m.HP)
	return w.Bytes()
}

// DecodeHP parses an hp payload.
func DecodeHP(payload []byte) (HPMsg, error) {
	r := NewReader(payload)
	var m HPMsg
	var err error
	if m.HP, err = r.Int32(); err != nil {
		return m, fmt.Errorf("hp: %w", err)
	}
	return m, nil
}

// TileMsg carries the sender's tile position in its own coordinate space.
// The receiver mirrors x before applying it.
type TileMsg struct {
	X int32
	Y int32
}

// Encode serializes the message with its signal discriminant.
func (m TileMsg) Encode() []byte {
	w := NewWriter(SignalTile)
	w.Int32(m.X)
	w.Int32(m.Y)
	return w.Bytes()
}

// DecodeTile parses a tile payload.
func DecodeTile(payload []byte) (TileMsg, error) {
	r := NewReader(payload)
	var m TileMsg
	var err error
	if m.X, err = r.Int32(); err != nil {
		return m, fmt.Errorf("tile: %w", err)
	}
	if m.Y, err = r.Int32(); err != nil {
		return m, fmt.Errorf("tile: %w", err)
	}
	return m, nil
}
