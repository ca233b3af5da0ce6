package cards

import "errors"

// Registry holds loaded card definitions addressed by id.
type Registry struct {
	cards []CardDef
	byID  map[string]int
}

// NewRegistry creates a registry from loaded card definitions.
func NewRegistry(defs []CardDef) *Registry {
	r := &Registry{cards: defs, byID: make(map[string]int, len(defs))}
	for i := range defs {
		r.byID[defs[i].ID] = i
	}
	return r
}

// LoadRegistry loads and creates a registry from the embedded cards.json.
func LoadRegistry() (*Registry, error) {
	defs, err := LoadCards()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no cards loaded from cards.json")
	}
	return NewRegistry(defs), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the card definition with the given id, or nil if not found.
func (r *Registry) GetByID(id string) *CardDef {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.cards[i]
}

// All returns all card definitions.
func (r *Registry) All() []CardDef {
	return r.cards
}

// Count returns the number of loaded card definitions.
func (r *Registry) Count() int {
	return len(r.cards)
}
