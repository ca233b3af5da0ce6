package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/netbattle/internal/battle"
	"github.com/samdwyer/netbattle/internal/cards"
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/field"
	"github.com/samdwyer/netbattle/internal/frametime"
	"github.com/samdwyer/netbattle/internal/netplay"
	"github.com/samdwyer/netbattle/internal/stategraph"
	"github.com/samdwyer/netbattle/internal/telemetry"
	"github.com/samdwyer/netbattle/internal/ui"
)

const tickDuration = time.Second / frametime.FramesPerSecond

// Game owns one battle from setup to fade-out.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer

	session *battle.Session
	graph   *stategraph.Graph

	// Networked play only.
	transport netplay.Transport
	link      *battle.NetLink
	netStates *battle.NetworkStates

	soloStates *battle.SoloStates

	events chan tcell.Event

	frame   uint32
	running bool
}

// New creates a game, initialises the terminal and builds the session for
// the configured mode.
func New(ctx context.Context, cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		events:   make(chan tcell.Event, 16),
		running:  true,
	}

	if err := g.buildSession(ctx); err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) buildSession(ctx context.Context) error {
	f := field.NewDefault()
	player := entity.NewCharacter(1, g.cfg.PlayerName, field.TeamRed, 2, 2, 1000)
	if err := f.Place(player.ID, player.Team, player.X, player.Y); err != nil {
		return fmt.Errorf("place player: %w", err)
	}

	registry, err := cards.LoadRegistry()
	if err != nil {
		return err
	}
	advances, err := cards.LoadAdvances()
	if err != nil {
		return err
	}

	g.session = battle.NewSession(f, player, registry, advances)

	if g.cfg.Mode == ModeSolo {
		return g.buildSolo(f)
	}
	return g.buildNetworked(ctx, f)
}

// buildSolo sets up a scripted virus encounter.
func (g *Game) buildSolo(f *field.Field) error {
	enemies := []*entity.Character{
		entity.NewCharacter(100, "Mettaur", field.TeamBlue, 5, 1, 40),
		entity.NewCharacter(101, "Mettaur", field.TeamBlue, 5, 3, 40),
	}
	for _, e := range enemies {
		if err := f.Place(e.ID, e.Team, e.X, e.Y); err != nil {
			return fmt.Errorf("place enemy: %w", err)
		}
	}
	g.session.Mob = &entity.Mob{
		Name:        "Mettaur x2",
		Enemies:     enemies,
		IntroFrames: 90,
		CanRetreat:  true,
		RewardZenny: 30,
	}
	g.graph, g.soloStates = battle.BuildSoloGraph(g.session)
	return nil
}

// buildNetworked dials the relay and wires the battle to the link. The
// opponent character starts as a placeholder; the connect signal fills in
// its name and health.
func (g *Game) buildNetworked(ctx context.Context, f *field.Field) error {
	url := g.cfg.RelayURL + "/ws?code=" + g.cfg.MatchCode
	transport, err := netplay.Dial(ctx, url)
	if err != nil {
		return err
	}
	g.transport = transport

	opponent := entity.NewCharacter(2, "???", field.TeamBlue, f.MirrorX(2), 2, 1000)
	if err := f.Place(opponent.ID, opponent.Team, opponent.X, opponent.Y); err != nil {
		transport.Close()
		return fmt.Errorf("place opponent: %w", err)
	}
	g.session.Opponent = opponent

	g.link = battle.NewNetLink(g.session, transport)
	g.graph, g.netStates = battle.BuildNetworkGraph(g.session, g.link)
	return nil
}

// Run executes the main loop: fixed 60 Hz simulation steps with terminal
// input and transport polling folded in between ticks.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "battle.session")
	span.SetAttributes(
		attribute.String("mode", g.cfg.Mode.String()),
		attribute.String("player", g.cfg.PlayerName),
	)
	defer span.End()

	go g.pumpEvents()

	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()

	last := time.Now()
	var acc time.Duration

	for g.running {
		select {
		case <-ctx.Done():
			g.shutdown()
			return ctx.Err()
		case ev := <-g.events:
			g.handleEvent(ev)
		case now := <-ticker.C:
			acc += now.Sub(last)
			last = now
			for acc >= tickDuration && g.running {
				g.step()
				acc -= tickDuration
			}
			g.render()
		}
	}

	span.SetAttributes(
		attribute.Bool("won", g.session.Results.Won),
		attribute.Int("turns", g.session.TurnCount),
		attribute.Int("rank", g.session.Results.Rank()),
	)
	g.shutdown()
	return nil
}

// step advances the simulation exactly one frame.
func (g *Game) step() {
	if g.transport != nil {
		g.transport.Poll()
	}

	g.graph.Tick(1)
	g.frame++

	if g.link != nil {
		g.flushFrameData()
	}

	if g.session.Completed || !g.graph.Running() {
		g.graph.Quit()
		g.running = false
	}
}

// flushFrameData replicates this frame's input edges and piggybacked health.
func (g *Game) flushFrameData() {
	events := g.link.DrainInputs()
	if len(events) == 0 && g.frame%30 != 0 {
		return
	}
	msg := netplay.FrameDataMsg{
		Frame:  g.frame,
		HP:     int32(g.session.Player.HP),
		Events: events,
	}
	raw, err := msg.Encode()
	if err == nil {
		g.transport.SendPacket(netplay.ReliableOrdered, raw)
	}
}

// pumpEvents forwards terminal events into the loop's channel.
func (g *Game) pumpEvents() {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		g.events <- ev
	}
}

func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.session.AbortRequested = true
	case tcell.KeyUp:
		g.tryMove(0, -1)
	case tcell.KeyDown:
		g.tryMove(0, 1)
	case tcell.KeyLeft:
		g.tryMove(-1, 0)
	case tcell.KeyRight:
		g.tryMove(1, 0)
	case tcell.KeyEnter:
		g.confirmSelection()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			g.useCard()
		case 'q', 'Q':
			g.session.AbortRequested = true
		case 'r', 'R':
			g.session.RetreatChoice = true
			g.confirmSelection()
		}
	}
}

// confirmSelection commits whatever the widget has staged. The terminal
// front end keeps selection simple: Enter confirms the next five unplayed
// cards from the folder.
func (g *Game) confirmSelection() {
	if g.session.Confirmed {
		return
	}
	if len(g.session.PendingSelection) == 0 && !g.session.RetreatChoice {
		g.session.PendingSelection = g.defaultDraw()
	}
	g.session.Confirmed = true
}

// defaultDraw picks an opening hand from the registry.
func (g *Game) defaultDraw() []string {
	draw := []string{"Cannon_A", "Cannon_B", "Cannon_C", "Sword_S", "Recover30"}
	picked := make([]string, 0, len(draw))
	for _, id := range draw {
		if g.session.Registry.GetByID(id) != nil {
			picked = append(picked, id)
		}
	}
	return picked
}

// useCard stages the input edge. Replication to the peer happens from the
// combat state's card hook, once the card actually plays, so a press the
// simulation ignores never desyncs the peer's hand replay.
func (g *Game) useCard() {
	g.session.UseCardRequested = true
}

func (g *Game) tryMove(dx, dy int) {
	p := g.session.Player
	toX, toY := p.X+dx, p.Y+dy
	if err := g.session.Field.Move(p.ID, p.Team, p.X, p.Y, toX, toY); err != nil {
		return
	}
	p.X, p.Y = toX, toY
	if g.link != nil {
		g.link.SendTile()
	}
}

func (g *Game) render() {
	status := ""
	if g.transport != nil {
		q := netplay.QualityFor(g.transport.GetAvgLatency(), g.transport.FramesSinceAck())
		status = fmt.Sprintf("link: %s (%.0f ms)", q, g.transport.GetAvgLatency())
		if g.link.RemoteChoosingCards() {
			status += " | opponent picking cards"
		}
	}
	g.renderer.RenderBattle(g.session, status)
}

func (g *Game) shutdown() {
	if g.transport != nil {
		g.transport.Close()
		g.transport = nil
	}
	g.screen.Close()
}

// Close releases terminal and network resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
	if g.transport != nil {
		g.transport.Close()
	}
}
