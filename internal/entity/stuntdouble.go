package entity

// NewStuntDouble creates a temporary stand-in for the given actor. The double
// takes the actor's tile so the time-freeze animation has a tile-bound
// presence while the real actor is hidden; it never takes damage that counts
// and is removed when the action resolves.
func NewStuntDouble(id int, of *Character) *Character {
	return &Character{
		ID:          id,
		Name:        of.Name,
		Symbol:      of.Symbol,
		Team:        of.Team,
		X:           of.X,
		Y:           of.Y,
		HP:          of.HP,
		MaxHP:       of.MaxHP,
		Form:        of.Form,
		StuntDouble: true,
	}
}
