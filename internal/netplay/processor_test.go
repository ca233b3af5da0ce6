package netplay

import "testing"

func mirror6(x int) int { return 6 - x + 1 }

func connectedProcessor(t *testing.T) *Processor {
	t.Helper()
	p := NewProcessor(mirror6)
	raw, err := ConnectMsg{PlayerName: "Proto", TileX: 2, TileY: 2, MaxHP: 1200}.Encode()
	if err != nil {
		t.Fatalf("encode connect: %v", err)
	}
	sig, payload, _ := SplitSignal(raw)
	p.ProcessBody(sig, payload)
	if !p.Remote.RemoteConnected {
		t.Fatal("connect did not register")
	}
	return p
}

func process(t *testing.T, p *Processor, raw []byte) {
	t.Helper()
	sig, payload, err := SplitSignal(raw)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	p.ProcessBody(sig, payload)
}

func TestConnectMirrorsTileAndSeedsHP(t *testing.T) {
	p := connectedProcessor(t)
	if p.Remote.RemoteTileX != 5 {
		t.Errorf("tile x = %d, want 5 (mirror of 2 on width 6)", p.Remote.RemoteTileX)
	}
	if p.Remote.RemoteTileY != 2 {
		t.Errorf("tile y = %d, want 2", p.Remote.RemoteTileY)
	}
	if p.Remote.RemoteHP != 1200 || p.Remote.RemoteMaxHP != 1200 {
		t.Errorf("hp = %d/%d, want 1200/1200", p.Remote.RemoteHP, p.Remote.RemoteMaxHP)
	}
}

func TestDuplicateConnectIgnored(t *testing.T) {
	p := connectedProcessor(t)
	raw, _ := ConnectMsg{PlayerName: "Bass", TileX: 1, TileY: 1, MaxHP: 2000}.Encode()
	process(t, p, raw)
	if p.Remote.RemoteName != "Proto" {
		t.Errorf("name = %q, want original %q", p.Remote.RemoteName, "Proto")
	}
	if p.Remote.RemoteMaxHP != 1200 {
		t.Errorf("max hp = %d, want original 1200", p.Remote.RemoteMaxHP)
	}
}

func TestSignalsBeforeConnectAreDropped(t *testing.T) {
	p := NewProcessor(mirror6)
	process(t, p, HPMsg{HP: 1}.Encode())
	process(t, p, TileMsg{X: 3, Y: 1}.Encode())
	p.ProcessBody(SignalLoser, nil)
	p.ProcessBody(SignalCardSelect, nil)
	if p.Remote.RemoteHP != 0 || p.Remote.RemoteTileX != 0 {
		t.Error("state mutated before connect")
	}
	if p.Remote.RemoteLoser {
		t.Error("loser accepted before connect")
	}
	if p.Remote.OpenedCardSelect {
		t.Error("card select accepted before connect")
	}
}

// Applying the same hp and tile packets twice must land on the same state:
// both are absolute overwrites, not deltas.
func TestHPAndTileAreIdempotent(t *testing.T) {
	p := connectedProcessor(t)
	hp := HPMsg{HP: 640}.Encode()
	tile := TileMsg{X: 3, Y: 1}.Encode()
	for i := 0; i < 2; i++ {
		process(t, p, hp)
		process(t, p, tile)
	}
	if p.Remote.RemoteHP != 640 {
		t.Errorf("hp = %d, want 640", p.Remote.RemoteHP)
	}
	if p.Remote.RemoteTileX != 4 || p.Remote.RemoteTileY != 1 {
		t.Errorf("tile = (%d, %d), want (4, 1)", p.Remote.RemoteTileX, p.Remote.RemoteTileY)
	}
}

func TestTileCallbackReceivesMirroredCoordinates(t *testing.T) {
	p := connectedProcessor(t)
	var gotX, gotY, calls int
	p.SetTileCallback(func(x, y int) {
		gotX, gotY = x, y
		calls++
	})

	process(t, p, TileMsg{X: 3, Y: 1}.Encode())
	if calls != 1 {
		t.Fatalf("tile callback fired %d times, want 1", calls)
	}
	if gotX != mirror6(3) || gotY != 1 {
		t.Fatalf("callback got (%d,%d), want (%d,1)", gotX, gotY, mirror6(3))
	}
}

func TestFormChangeDedupe(t *testing.T) {
	p := connectedProcessor(t)

	process(t, p, FormMsg{Form: 2}.Encode())
	if p.Remote.RemoteForm != 2 || !p.Remote.RemoteFormChange {
		t.Fatalf("first change: form = %d, change = %v", p.Remote.RemoteForm, p.Remote.RemoteFormChange)
	}

	p.Remote.RemoteFormChange = false
	process(t, p, FormMsg{Form: 2}.Encode())
	if p.Remote.RemoteFormChange {
		t.Error("repeated form value flagged as a change")
	}

	process(t, p, FormMsg{Form: -1}.Encode())
	if p.Remote.RemoteForm != -1 || !p.Remote.RemoteFormChange {
		t.Errorf("revert to base: form = %d, change = %v", p.Remote.RemoteForm, p.Remote.RemoteFormChange)
	}
}

func TestCardSelectIsOneShot(t *testing.T) {
	p := connectedProcessor(t)
	p.ProcessBody(SignalCardSelect, nil)
	if !p.Remote.ConsumeCardSelect() {
		t.Fatal("first consume = false, want true")
	}
	if p.Remote.ConsumeCardSelect() {
		t.Fatal("second consume = true, want false")
	}
}

func TestHandshakeMarksReadyAndCopiesHand(t *testing.T) {
	p := connectedProcessor(t)
	var got HandshakeMsg
	p.SetHandshakeCallback(func(m HandshakeMsg) { got = m })

	raw, err := HandshakeMsg{SyncIndex: 1, SelectedForm: 0, CardIDs: []string{"Cannon_A", "Cannon_B"}}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	process(t, p, raw)

	if !p.Remote.RemoteReady {
		t.Error("remote not marked ready")
	}
	if p.Remote.RemoteForm != 0 || !p.Remote.RemoteFormChange {
		t.Errorf("form = %d, change = %v, want 0, true", p.Remote.RemoteForm, p.Remote.RemoteFormChange)
	}
	if len(p.Remote.RemoteHand) != 2 || p.Remote.RemoteHand[0] != "Cannon_A" {
		t.Errorf("hand = %v", p.Remote.RemoteHand)
	}
	if len(got.CardIDs) != 2 {
		t.Errorf("callback hand = %v", got.CardIDs)
	}
}

func TestFrameDataAdvancesFrameAndHP(t *testing.T) {
	p := connectedProcessor(t)
	raw, err := FrameDataMsg{Frame: 30, HP: 999, Events: []InputEvent{{Name: "shoot", Pressed: true}}}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	process(t, p, raw)
	if p.Remote.RemoteFrame != 30 {
		t.Errorf("frame = %d, want 30", p.Remote.RemoteFrame)
	}
	if p.Remote.RemoteHP != 999 {
		t.Errorf("hp = %d, want 999", p.Remote.RemoteHP)
	}
}

// A burst of undecodable packets must eventually abort the session instead of
// looping on garbage forever.
func TestDecodeErrorBurstAborts(t *testing.T) {
	p := connectedProcessor(t)
	aborted := false
	p.SetAbortCallback(func() { aborted = true })

	for i := 0; i < abortErrorThreshold; i++ {
		p.ProcessBody(SignalHP, []byte{0x01}) // hp needs four bytes
	}
	if !aborted {
		t.Fatal("abort callback not fired after error burst")
	}
}

func TestDecodeErrorCountResetsOnSuccess(t *testing.T) {
	p := connectedProcessor(t)
	aborted := false
	p.SetAbortCallback(func() { aborted = true })

	for i := 0; i < abortErrorThreshold-1; i++ {
		p.ProcessBody(SignalHP, []byte{0x01})
	}
	process(t, p, HPMsg{HP: 500}.Encode())
	for i := 0; i < abortErrorThreshold-1; i++ {
		p.ProcessBody(SignalHP, []byte{0x01})
	}
	if aborted {
		t.Fatal("aborted despite successful decode between bursts")
	}
}
