package cards

// Hand is an ordered sequence of played-card ids with a cursor over the next
// unused card. Used cards are skipped, never removed, so indices stay stable
// for UI highlighting and replays. The cursor only moves forward within a
// round.
type Hand struct {
	ids    []string
	used   []bool
	cursor int
}

// NewHand creates a hand over the given card ids, in play order.
func NewHand(ids []string) *Hand {
	return &Hand{
		ids:  append([]string(nil), ids...),
		used: make([]bool, len(ids)),
	}
}

// IDs returns the full ordered card list, including used entries.
func (h *Hand) IDs() []string {
	return append([]string(nil), h.ids...)
}

// Len returns the total number of cards in the hand.
func (h *Hand) Len() int { return len(h.ids) }

// Remaining returns how many cards have not been used yet.
func (h *Hand) Remaining() int {
	n := 0
	for i := h.cursor; i < len(h.ids); i++ {
		if !h.used[i] {
			n++
		}
	}
	return n
}

// Peek returns the next unused card id without consuming it. The second
// return is false when the hand is exhausted.
func (h *Hand) Peek() (string, bool) {
	for i := h.cursor; i < len(h.ids); i++ {
		if !h.used[i] {
			return h.ids[i], true
		}
	}
	return "", false
}

// DropNext consumes the next unused card and returns its id. The cursor is
// monotonically non-decreasing.
func (h *Hand) DropNext() (string, bool) {
	for i := h.cursor; i < len(h.ids); i++ {
		if !h.used[i] {
			h.used[i] = true
			h.cursor = i
			return h.ids[i], true
		}
	}
	return "", false
}

// Cursor returns the index of the most recently used card, or 0 when none
// has been used.
func (h *Hand) Cursor() int { return h.cursor }
