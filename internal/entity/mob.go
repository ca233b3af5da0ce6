package entity

// Mob describes a scripted enemy encounter for solo play: the enemies to
// spawn, how long their intro animation runs, and whether the player may
// retreat from them.
type Mob struct {
	Name        string
	Enemies     []*Character
	IntroFrames int64 // spawn-in animation length at 60fps
	CanRetreat  bool  // retreat is refused by boss-class mobs
	RewardZenny int   // base reward paid out on victory
}

// Cleared reports whether every enemy in the mob has been deleted.
func (m *Mob) Cleared() bool {
	for _, e := range m.Enemies {
		if e.IsAlive() {
			return false
		}
	}
	return true
}

// AliveCount returns how many enemies still stand.
func (m *Mob) AliveCount() int {
	n := 0
	for _, e := range m.Enemies {
		if e.IsAlive() {
			n++
		}
	}
	return n
}
