package cards

// LockoutType classifies how a card action blocks the battle while running.
type LockoutType int

const (
	// LockoutAnimation ends the action when its animation finishes.
	LockoutAnimation LockoutType = iota
	// LockoutSequence ends the action only when its scripted sequence
	// releases the lockout, independent of the animation length.
	LockoutSequence
)

// CardDef defines a playable card loaded from JSON.
type CardDef struct {
	ID                  string `json:"id"`                  // Unique identifier (e.g., "Cannon_A")
	Shortname           string `json:"shortname"`           // Display name shown in banners
	Damage              int    `json:"damage"`              // Base damage
	Element             string `json:"element"`             // Element name (e.g., "fire")
	TimeFreeze          bool   `json:"timeFreeze"`          // Pauses the field while resolving
	SkipTimeFreezeIntro bool   `json:"skipTimeFreezeIntro"` // Skips the name banner window
	Counterable         bool   `json:"counterable"`         // Opposing team may counter during the banner
	Lockout             string `json:"lockout"`             // "sequence" or "" (animation)
	AnimationFrames     int64  `json:"animationFrames"`     // Animation length at 60fps
	LockoutFrames       int64  `json:"lockoutFrames"`       // Sequence lockout length, if any
}

// LockoutType returns the parsed lockout classification.
func (c *CardDef) LockoutType() LockoutType {
	if c.Lockout == "sequence" {
		return LockoutSequence
	}
	return LockoutAnimation
}

// CardsFile represents the structure of cards.json.
type CardsFile struct {
	Cards []CardDef `json:"cards"`
}

// LoadCards loads card definitions from the embedded cards.json file.
func LoadCards() ([]CardDef, error) {
	file, err := load[CardsFile]("cards.json")
	if err != nil {
		return nil, err
	}
	return file.Cards, nil
}
