package netplay

import (
	"errors"
	"testing"
)

func TestConnectRoundTrip(t *testing.T) {
	in := ConnectMsg{PlayerName: "Lan", TileX: 2, TileY: 2, MaxHP: 1000}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	sig, payload, err := SplitSignal(raw)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if sig != SignalConnect {
		t.Fatalf("signal = %v, want %v", sig, SignalConnect)
	}
	out, err := DecodeConnect(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}

func TestHandshakeRoundTrip(t *testing.T) {
	in := HandshakeMsg{
		SyncIndex:    2,
		SelectedForm: -1,
		CardIDs:      []string{"Cannon_A", "Cannon_B", "Cannon_C", "Recover30"},
	}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, payload, _ := SplitSignal(raw)
	out, err := DecodeHandshake(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.SyncIndex != in.SyncIndex || out.SelectedForm != in.SelectedForm {
		t.Fatalf("header = (%d, %d), want (%d, %d)",
			out.SyncIndex, out.SelectedForm, in.SyncIndex, in.SelectedForm)
	}
	if len(out.CardIDs) != len(in.CardIDs) {
		t.Fatalf("got %d cards, want %d", len(out.CardIDs), len(in.CardIDs))
	}
	for i, id := range in.CardIDs {
		if out.CardIDs[i] != id {
			t.Errorf("card %d = %q, want %q", i, out.CardIDs[i], id)
		}
	}
}

func TestFrameDataRoundTrip(t *testing.T) {
	in := FrameDataMsg{
		Frame: 412,
		HP:    860,
		Events: []InputEvent{
			{Name: "move_up", Pressed: true},
			{Name: "shoot", Pressed: false},
		},
	}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, payload, _ := SplitSignal(raw)
	out, err := DecodeFrameData(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Frame != in.Frame || out.HP != in.HP {
		t.Fatalf("header = (%d, %d), want (%d, %d)", out.Frame, out.HP, in.Frame, in.HP)
	}
	if len(out.Events) != len(in.Events) {
		t.Fatalf("got %d events, want %d", len(out.Events), len(in.Events))
	}
	for i, ev := range in.Events {
		if out.Events[i] != ev {
			t.Errorf("event %d = %+v, want %+v", i, out.Events[i], ev)
		}
	}
}

// Truncating a valid payload at every byte offset must produce ErrShortBuffer,
// never a panic or a silently wrong value.
func TestTruncatedPayloadsReturnShortBuffer(t *testing.T) {
	full, err := ConnectMsg{PlayerName: "Mega", TileX: 2, TileY: 2, MaxHP: 900}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, payload, _ := SplitSignal(full)
	for n := 0; n < len(payload); n++ {
		if _, err := DecodeConnect(payload[:n]); !errors.Is(err, ErrShortBuffer) {
			t.Errorf("truncated at %d: err = %v, want ErrShortBuffer", n, err)
		}
	}
}

func TestTruncatedHandshakeCardList(t *testing.T) {
	full, err := HandshakeMsg{SyncIndex: 1, SelectedForm: 0, CardIDs: []string{"Sword_S", "WideSword_W"}}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, payload, _ := SplitSignal(full)
	// Cut inside the second card id.
	cut := payload[:len(payload)-3]
	if _, err := DecodeHandshake(cut); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("err = %v, want ErrShortBuffer", err)
	}
}

func TestString8RejectsOversizedString(t *testing.T) {
	w := NewWriter(SignalHandshake)
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	if err := w.String8(string(long)); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
}

func TestSplitSignalEmptyMessage(t *testing.T) {
	if _, _, err := SplitSignal(nil); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("err = %v, want ErrShortBuffer", err)
	}
}

func TestReaderRemaining(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5, 6})
	if _, err := r.Uint16(); err != nil {
		t.Fatalf("uint16: %v", err)
	}
	if got := r.Remaining(); got != 4 {
		t.Fatalf("remaining = %d, want 4", got)
	}
}
