package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a clock that always reports ts, for tests.
func FixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
