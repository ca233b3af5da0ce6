package cards

// AdvanceDef defines a program advance: a bonus card granted when a specific
// ordered sequence of cards is played in one turn.
type AdvanceDef struct {
	ID           string   `json:"id"`           // Unique identifier (e.g., "zeta_cannon")
	Result       string   `json:"result"`       // Card id the sequence fuses into
	Sequence     []string `json:"sequence"`     // Exact ordered card ids required
	RevealFrames int64    `json:"revealFrames"` // Reveal animation length at 60fps
}

// AdvancesFile represents the structure of advances.json.
type AdvancesFile struct {
	Advances []AdvanceDef `json:"advances"`
}

// LoadAdvances loads program advance definitions from the embedded
// advances.json file.
func LoadAdvances() ([]AdvanceDef, error) {
	file, err := load[AdvancesFile]("advances.json")
	if err != nil {
		return nil, err
	}
	return file.Advances, nil
}

// MustLoadAdvances loads program advance definitions, panicking on error.
func MustLoadAdvances() []AdvanceDef {
	advances, err := LoadAdvances()
	if err != nil {
		panic(err)
	}
	return advances
}

// FindAdvance returns the first advance whose sequence appears, in order and
// contiguously, within the played card ids. A pure function of its inputs:
// both networked clients run it against the same hand and must agree, so it
// must never consult anything but its arguments.
func FindAdvance(advances []AdvanceDef, ids []string) *AdvanceDef {
	for i := range advances {
		if matchesAt(advances[i].Sequence, ids) {
			return &advances[i]
		}
	}
	return nil
}

func matchesAt(seq, ids []string) bool {
	if len(seq) == 0 || len(seq) > len(ids) {
		return false
	}
	for start := 0; start+len(seq) <= len(ids); start++ {
		match := true
		for j := range seq {
			if ids[start+j] != seq[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
