package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for the run date and the date spine.
// Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// RunDate returns the current pipeline run date (UTC, midnight-truncated).
// The Daily Aggregator refuses rows dated beyond it and the date spine ends at it.
func RunDate() time.Time {
	return DateOf(clock.Now().UTC())
}
