package tier

// Tally counts how many rounds landed in each tier.
type Tally map[ID]int

// NewTally returns a tally with every tier at zero.
func NewTally() Tally {
	t := make(Tally, 5)
	for _, id := range All() {
		t[id] = 0
	}
	return t
}

// Clone returns a copy holding every known tier. Unknown keys are dropped
// and negative counts clamp to zero.
func (t Tally) Clone() Tally {
	out := NewTally()
	for id, n := range t {
		if !id.Valid() {
			continue
		}
		if n < 0 {
			n = 0
		}
		out[id] = n
	}
	return out
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	sum := 0
	for _, n := range t {
		sum += n
	}
	return sum
}
