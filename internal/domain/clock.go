package domain

import "github.com/jonboulle/clockwork"

// clock stamps IssuedAt on new recommendations. Tests and fixture generators
// freeze it with SetClock so IDs and timestamps are reproducible.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
