// Package entity provides battle actors: player characters, mobs and the
// temporary stand-ins used during time-freeze actions.
package entity

import "github.com/samdwyer/netbattle/internal/field"

// Character represents a combat actor standing on the field.
type Character struct {
	ID     int        // Stable entity id, unique within a session
	Name   string     // Display name
	Symbol rune       // Display symbol
	Team   field.Team // Which side of the field the character fights for
	X, Y   int        // Tile position (1-based)
	HP     int        // Current hit points
	MaxHP  int        // Maximum hit points

	// Form is the currently active transformation index, -1 for base form.
	Form int

	// StuntDouble marks a temporary stand-in spawned for a time-freeze
	// action while the real actor is hidden.
	StuntDouble bool
}

// NewCharacter creates a character at the given tile with full health.
func NewCharacter(id int, name string, team field.Team, x, y, maxHP int) *Character {
	return &Character{
		ID:     id,
		Name:   name,
		Symbol: rune(name[0]),
		Team:   team,
		X:      x,
		Y:      y,
		HP:     maxHP,
		MaxHP:  maxHP,
		Form:   -1,
	}
}

// IsAlive reports whether the character has hit points remaining.
func (c *Character) IsAlive() bool { return c.HP > 0 }

// TakeDamage reduces HP, clamping at zero, and returns the damage dealt.
func (c *Character) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > c.HP {
		amount = c.HP
	}
	c.HP -= amount
	return amount
}

// Heal restores HP up to MaxHP and returns the amount restored.
func (c *Character) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	if c.HP+amount > c.MaxHP {
		amount = c.MaxHP - c.HP
	}
	c.HP += amount
	return amount
}

// SetHealth overwrites HP directly, clamped to [0, MaxHP]. The network
// receive path uses this for last-writer-wins reconciliation of the remote
// mirror.
func (c *Character) SetHealth(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > c.MaxHP {
		hp = c.MaxHP
	}
	c.HP = hp
}

// Teammate reports whether the other character fights for the same team.
func (c *Character) Teammate(other *Character) bool {
	return other != nil && c.Team == other.Team
}
