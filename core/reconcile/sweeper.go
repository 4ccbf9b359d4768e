package reconcile

import "time"

// Sweep evicts every tracked entry whose generator is no longer live and
// returns how many were removed. Live entries are left untouched.
func Sweep(set *TrackedSet) int {
	removed := 0
	for _, obj := range set.Snapshot() {
		if isLive(obj) {
			continue
		}
		if set.Remove(obj) {
			removed++
		}
	}
	return removed
}

// Sweeper runs Sweep on an accumulated time interval.
type Sweeper struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewSweeper creates a Sweeper. An interval of zero disables sweeping.
func NewSweeper(interval time.Duration) *Sweeper {
	return &Sweeper{interval: interval}
}

// SetInterval changes the interval and resets the accumulator.
func (s *Sweeper) SetInterval(interval time.Duration) {
	s.interval = interval
	s.elapsed = 0
}

// Interval returns the configured interval.
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

// Advance adds dt to the accumulator and sweeps set once the interval is reached.
// swept reports whether a sweep ran.
func (s *Sweeper) Advance(dt time.Duration, set *TrackedSet) (swept bool, removed int) {
	if s.interval <= 0 {
		return false, 0
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return false, 0
	}
	s.elapsed = 0
	return true, Sweep(set)
}
