package game

// repetitionTracker accumulates the PositionKey appended after every
// halfmove, including the initial position, and counts how many times
// each key has occurred — the basis for threefold/fivefold-repetition
// detection.
type repetitionTracker struct {
	keys   []PositionKey
	counts map[PositionKey]int
}

func newRepetitionTracker(initial PositionKey) *repetitionTracker {
	t := &repetitionTracker{
		keys:   []PositionKey{initial},
		counts: map[PositionKey]int{initial: 1},
	}
	return t
}

// push appends a new position key after a move and returns its updated
// occurrence count.
func (t *repetitionTracker) push(key PositionKey) int {
	t.keys = append(t.keys, key)
	t.counts[key]++
	return t.counts[key]
}

// current returns the occurrence count of the most recently pushed key.
func (t *repetitionTracker) current() int {
	if len(t.keys) == 0 {
		return 0
	}
	return t.counts[t.keys[len(t.keys)-1]]
}

// history returns the full position-key history as strings, in the order
// they occurred, for the external GameView.
func (t *repetitionTracker) history() []string {
	out := make([]string, len(t.keys))
	for i, k := range t.keys {
		out[i] = string(k)
	}
	return out
}
