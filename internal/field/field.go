package field

import (
	"errors"
	"fmt"
)

const (
	// DefaultWidth is the canonical field width in tiles.
	DefaultWidth = 6
	// DefaultHeight is the canonical field height in tiles.
	DefaultHeight = 3
)

var (
	// ErrOutOfBounds indicates a coordinate outside the field.
	ErrOutOfBounds = errors.New("tile out of bounds")
	// ErrTileOccupied indicates the target tile already holds a character.
	ErrTileOccupied = errors.New("tile occupied")
	// ErrTileBroken indicates the target tile cannot hold a character.
	ErrTileBroken = errors.New("tile broken")
	// ErrWrongTeam indicates the target tile belongs to the opposing team.
	ErrWrongTeam = errors.New("tile belongs to the other team")
)

// Field is the battle grid. Coordinates are 1-based: x in [1,Width],
// y in [1,Height]. The left half belongs to the red team, the right half to
// the blue team.
type Field struct {
	Width  int
	Height int
	tiles  [][]Tile
}

// New creates a field of the given dimensions with team ownership split down
// the horizontal midpoint.
func New(width, height int) *Field {
	f := &Field{Width: width, Height: height}
	f.tiles = make([][]Tile, height)
	for y := range f.tiles {
		f.tiles[y] = make([]Tile, width)
		for x := range f.tiles[y] {
			team := TeamRed
			if x+1 > width/2 {
				team = TeamBlue
			}
			f.tiles[y][x] = Tile{X: x + 1, Y: y + 1, Team: team}
		}
	}
	return f
}

// NewDefault creates the canonical 6x3 field.
func NewDefault() *Field {
	return New(DefaultWidth, DefaultHeight)
}

// InBounds reports whether (x, y) is a valid tile coordinate.
func (f *Field) InBounds(x, y int) bool {
	return x >= 1 && x <= f.Width && y >= 1 && y <= f.Height
}

// At returns the tile at (x, y), or nil when out of bounds.
func (f *Field) At(x, y int) *Tile {
	if !f.InBounds(x, y) {
		return nil
	}
	return &f.tiles[y-1][x-1]
}

// MirrorX reflects an x coordinate across the field's horizontal midpoint.
// Each networked client renders the opponent on the opposite side, so tile
// coordinates received over the wire pass through this before being applied.
// MirrorX is its own inverse for any width.
func (f *Field) MirrorX(x int) int {
	return f.Width - x + 1
}

// Place puts the character id on the tile at (x, y). It fails when the tile
// is out of bounds, broken, occupied, or owned by a team other than the
// character's. Callers that cannot place (a time-freeze stunt double on a
// deleted tile) recover by skipping their animation phase, not by retrying.
func (f *Field) Place(id int, team Team, x, y int) error {
	t := f.At(x, y)
	if t == nil {
		return fmt.Errorf("place entity %d at (%d,%d): %w", id, x, y, ErrOutOfBounds)
	}
	if t.Broken {
		return fmt.Errorf("place entity %d at (%d,%d): %w", id, x, y, ErrTileBroken)
	}
	if t.Occupied() && t.occupant != id {
		return fmt.Errorf("place entity %d at (%d,%d): %w", id, x, y, ErrTileOccupied)
	}
	if team != TeamNone && t.Team != team {
		return fmt.Errorf("place entity %d at (%d,%d): %w", id, x, y, ErrWrongTeam)
	}
	t.occupant = id
	return nil
}

// Move relocates the character id from (fromX, fromY) to (toX, toY), with the
// same placement rules as Place. The origin tile is vacated only on success.
func (f *Field) Move(id int, team Team, fromX, fromY, toX, toY int) error {
	if err := f.Place(id, team, toX, toY); err != nil {
		return err
	}
	if from := f.At(fromX, fromY); from != nil && from.occupant == id {
		from.occupant = 0
	}
	return nil
}

// Remove vacates whatever tile holds the character id.
func (f *Field) Remove(id int) {
	for y := range f.tiles {
		for x := range f.tiles[y] {
			if f.tiles[y][x].occupant == id {
				f.tiles[y][x].occupant = 0
			}
		}
	}
}

// ToggleTimeFreeze sets the frozen flag on every tile. During a time freeze
// everything on the field pauses except the acting character.
func (f *Field) ToggleTimeFreeze(frozen bool) {
	for y := range f.tiles {
		for x := range f.tiles[y] {
			f.tiles[y][x].Frozen = frozen
		}
	}
}
