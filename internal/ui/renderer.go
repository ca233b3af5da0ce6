package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/netbattle/internal/battle"
	"github.com/samdwyer/netbattle/internal/entity"
	"github.com/samdwyer/netbattle/internal/field"
)

// Tile cells are drawn wider than tall so the grid reads as squares.
const (
	tileW     = 6
	tileH     = 3
	originX   = 2
	originY   = 3
	statusY   = 1
	footerGap = 2
)

// Renderer draws a battle session to the terminal.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderBattle draws the field, every standing character, the health
// readouts, the card gauge and the connection status line.
func (r *Renderer) RenderBattle(s *battle.Session, status string) {
	r.screen.Clear()

	r.drawHeader(s, status)
	r.drawField(s.Field)
	r.drawCharacter(s.Player)
	if s.Opponent != nil {
		r.drawCharacter(s.Opponent)
	}
	if s.Mob != nil {
		for _, e := range s.Mob.Enemies {
			if e.IsAlive() {
				r.drawCharacter(e)
			}
		}
	}
	r.drawGauge(s)

	r.screen.Show()
}

func (r *Renderer) drawHeader(s *battle.Session, status string) {
	left := fmt.Sprintf("%s  %d/%d", s.Player.Name, s.Player.HP, s.Player.MaxHP)
	r.drawText(originX, statusY, left, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	var right string
	switch {
	case s.Opponent != nil:
		right = fmt.Sprintf("%s  %d/%d", s.Opponent.Name, s.Opponent.HP, s.Opponent.MaxHP)
	case s.Mob != nil:
		right = fmt.Sprintf("%s  x%d", s.Mob.Name, s.Mob.AliveCount())
	}
	width, _ := r.screen.Size()
	r.drawText(width-len(right)-2, statusY, right, tcell.StyleDefault.Foreground(tcell.ColorRed))

	if status != "" {
		r.drawText(originX, statusY+1, status, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}

func (r *Renderer) drawField(f *field.Field) {
	for y := 1; y <= f.Height; y++ {
		for x := 1; x <= f.Width; x++ {
			r.drawTile(f.At(x, y))
		}
	}
}

func (r *Renderer) drawTile(t *field.Tile) {
	if t == nil {
		return
	}
	style := r.tileStyle(t)
	left := originX + (t.X-1)*tileW
	top := originY + (t.Y-1)*tileH

	for dy := 0; dy < tileH; dy++ {
		for dx := 0; dx < tileW; dx++ {
			ch := ' '
			switch {
			case dy == 0 || dy == tileH-1:
				ch = '-'
			case dx == 0 || dx == tileW-1:
				ch = '|'
			case t.Broken:
				ch = 'x'
			case t.Frozen:
				ch = '*'
			}
			r.screen.SetContent(left+dx, top+dy, ch, style)
		}
	}
}

func (r *Renderer) tileStyle(t *field.Tile) tcell.Style {
	switch t.Team {
	case field.TeamRed:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case field.TeamBlue:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}
}

func (r *Renderer) drawCharacter(c *entity.Character) {
	if !c.IsAlive() {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	if c.Team == field.TeamBlue {
		style = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	}
	if c.StuntDouble {
		style = style.Dim(true)
	}
	x := originX + (c.X-1)*tileW + tileW/2
	y := originY + (c.Y-1)*tileH + tileH/2
	r.screen.SetContent(x, y, c.Symbol, style)
}

// drawGauge renders the card gauge as a bracketed bar under the field.
func (r *Renderer) drawGauge(s *battle.Session) {
	y := originY + tileH*s.Field.Height + footerGap
	const cells = 20
	filled := int(int64(s.Gauge) * cells / int64(battle.GaugeFullFrames))
	if filled > cells {
		filled = cells
	}

	bar := make([]rune, 0, cells+2)
	bar = append(bar, '[')
	for i := 0; i < cells; i++ {
		if i < filled {
			bar = append(bar, '=')
			continue
		}
		bar = append(bar, ' ')
	}
	bar = append(bar, ']')

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	if s.GaugeFull() {
		style = style.Bold(true)
	}
	r.drawText(originX, y, string(bar), style)
	if s.GaugeFull() {
		r.drawText(originX+cells+4, y, "CUSTOM", style)
	}
}

func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
