// Package field provides the battle field: a small tile grid split between
// two teams, with occupancy tracking and the coordinate mirroring used by
// networked play.
package field

// Team identifies which side of the field a tile or character belongs to.
type Team int

const (
	// TeamNone is the zero value for unowned tiles and neutral actors.
	TeamNone Team = iota
	// TeamRed owns the left half of the field.
	TeamRed
	// TeamBlue owns the right half of the field.
	TeamBlue
)

// String returns a human-readable team name.
func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	default:
		return "none"
	}
}

// Opposing returns the other team, or TeamNone for TeamNone.
func (t Team) Opposing() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamNone
	}
}

// Tile is a single cell of the battle field.
type Tile struct {
	X, Y     int
	Team     Team
	Broken   bool // broken tiles cannot hold a character
	Frozen   bool // time-freeze flag; frozen tiles pause their occupant
	occupant int  // entity id, 0 when empty
}

// Occupied reports whether a character is standing on the tile.
func (t *Tile) Occupied() bool { return t.occupant != 0 }

// Occupant returns the id of the character on the tile, or 0.
func (t *Tile) Occupant() int { return t.occupant }
